package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectComment is a message posted on a project.
var ProjectComment = newProjectComment()

func newProjectComment() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectComment", models.ProjectComment{})

	obj.FieldFunc("id", func(in *models.ProjectComment) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("body", func(in *models.ProjectComment) string {
		return in.Body
	})
	obj.FieldFunc("createdAt", func(in *models.ProjectComment) time.Time {
		return in.CreatedAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectComment) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	obj.FieldFunc("author", func(ctx context.Context, in *models.ProjectComment) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.AuthorID))
	})

	return obj
}

package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectTrade is a trade practised on a project, such as carpentry.
var ProjectTrade = newProjectTrade()

func newProjectTrade() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectTrade", models.ProjectTrade{})

	obj.FieldFunc("id", func(in *models.ProjectTrade) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("name", func(in *models.ProjectTrade) string {
		return in.Name
	})
	obj.FieldFunc("description", func(in *models.ProjectTrade) string {
		return in.Description
	})
	obj.FieldFunc("createdAt", func(in *models.ProjectTrade) time.Time {
		return in.CreatedAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectTrade) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	return obj
}

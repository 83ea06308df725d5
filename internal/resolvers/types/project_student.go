package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectStudent enrols a user account on a project as a student.
var ProjectStudent = newProjectStudent()

func newProjectStudent() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectStudent", models.ProjectStudent{})

	obj.FieldFunc("id", func(in *models.ProjectStudent) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("enrolledAt", func(in *models.ProjectStudent) time.Time {
		return in.EnrolledAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectStudent) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	obj.FieldFunc("student", func(ctx context.Context, in *models.ProjectStudent) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.UserAccountID))
	})

	return obj
}

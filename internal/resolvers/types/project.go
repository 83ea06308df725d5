package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// Project is a piece of trade work that apprentices and students learn on.
var Project = newProject()

func newProject() *schemabuilder.Object {
	obj := schemabuilder.NewObject("Project", models.Project{}, "A piece of trade work that apprentices and students learn on.")

	obj.FieldFunc("id", func(in *models.Project) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("title", func(in *models.Project) string {
		return in.Title
	})
	obj.FieldFunc("description", func(in *models.Project) string {
		return in.Description
	})
	obj.FieldFunc("status", func(in *models.Project) models.ProjectStatus {
		return in.Status
	})
	obj.FieldFunc("createdAt", func(in *models.Project) time.Time {
		return in.CreatedAt
	})
	obj.FieldFunc("startsAt", func(in *models.Project) *time.Time {
		return in.StartsAt
	})
	obj.FieldFunc("endsAt", func(in *models.Project) *time.Time {
		return in.EndsAt
	})

	obj.FieldFunc("owner", func(ctx context.Context, in *models.Project) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.OwnerID))
	})

	obj.FieldFunc("trades", func(ctx context.Context, in *models.Project) ([]*models.ProjectTrade, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectTrades(ctx, in.ID)
	})

	obj.FieldFunc("comments", func(ctx context.Context, in *models.Project) ([]*models.ProjectComment, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectComments(ctx, in.ID)
	}, schemabuilder.FieldDesc("Oldest first."))

	obj.FieldFunc("tasks", func(ctx context.Context, in *models.Project) ([]*models.ProjectTask, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectTasks(ctx, in.ID)
	})

	obj.FieldFunc("apprenticeTasks", func(ctx context.Context, in *models.Project) ([]*models.ProjectApprenticeTask, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ApprenticeTasksByProject(ctx, in.ID)
	})

	obj.FieldFunc("students", func(ctx context.Context, in *models.Project) ([]*models.ProjectStudent, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectStudents(ctx, in.ID)
	})

	obj.FieldFunc("masterTradesmen", func(ctx context.Context, in *models.Project) ([]*models.ProjectMasterTradesman, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectMasterTradesmen(ctx, in.ID)
	})

	return obj
}

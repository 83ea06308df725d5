package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectApprenticeTask is a project task assigned to one apprentice.
var ProjectApprenticeTask = newProjectApprenticeTask()

func newProjectApprenticeTask() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectApprenticeTask", models.ProjectApprenticeTask{}, "A project task assigned to one apprentice.")

	obj.FieldFunc("id", func(in *models.ProjectApprenticeTask) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("status", func(in *models.ProjectApprenticeTask) models.ApprenticeTaskStatus {
		return in.Status
	})
	obj.FieldFunc("assignedAt", func(in *models.ProjectApprenticeTask) time.Time {
		return in.AssignedAt
	})
	obj.FieldFunc("updatedAt", func(in *models.ProjectApprenticeTask) time.Time {
		return in.UpdatedAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectApprenticeTask) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	obj.FieldFunc("task", func(ctx context.Context, in *models.ProjectApprenticeTask) (*models.ProjectTask, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.ProjectTask(ctx, in.ProjectTaskID))
	})

	obj.FieldFunc("apprentice", func(ctx context.Context, in *models.ProjectApprenticeTask) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.ApprenticeID))
	})

	return obj
}

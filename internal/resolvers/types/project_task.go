package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectTask is a unit of work within a project.
var ProjectTask = newProjectTask()

func newProjectTask() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectTask", models.ProjectTask{})

	obj.FieldFunc("id", func(in *models.ProjectTask) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("title", func(in *models.ProjectTask) string {
		return in.Title
	})
	obj.FieldFunc("description", func(in *models.ProjectTask) string {
		return in.Description
	})
	obj.FieldFunc("status", func(in *models.ProjectTask) models.TaskStatus {
		return in.Status
	})
	obj.FieldFunc("dueAt", func(in *models.ProjectTask) *time.Time {
		return in.DueAt
	})
	obj.FieldFunc("createdAt", func(in *models.ProjectTask) time.Time {
		return in.CreatedAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectTask) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	obj.FieldFunc("apprenticeTasks", func(ctx context.Context, in *models.ProjectTask) ([]*models.ProjectApprenticeTask, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ApprenticeTasksByTask(ctx, in.ID)
	}, schemabuilder.FieldDesc("Apprentices this task has been handed to."))

	return obj
}

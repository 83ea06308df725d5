package store

import (
	"context"
	"fmt"
	"time"

	"go.appointy.com/guild/internal/models"
)

var apprenticeTaskOrder = byTime(
	func(t *models.ProjectApprenticeTask) time.Time { return t.AssignedAt },
	func(t *models.ProjectApprenticeTask) string { return t.ID },
)

func (s *Store) CreateProjectTask(ctx context.Context, t *models.ProjectTask) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	return create(ctx, s.colls[projectTasks], "project task", t.ID, t)
}

func (s *Store) ProjectTask(ctx context.Context, id string) (*models.ProjectTask, error) {
	return get(ctx, s.colls[projectTasks], "project task", id, &models.ProjectTask{ID: id})
}

func (s *Store) ProjectTasks(ctx context.Context, projectID string) ([]*models.ProjectTask, error) {
	return list(ctx, s.colls[projectTasks], "projectId", projectID, byTime(
		func(t *models.ProjectTask) time.Time { return t.CreatedAt },
		func(t *models.ProjectTask) string { return t.ID },
	))
}

// AssignApprenticeTask stores an assignment. A task is assigned to an
// apprentice at most once.
func (s *Store) AssignApprenticeTask(ctx context.Context, t *models.ProjectApprenticeTask) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.AssignedAt.IsZero() {
		t.AssignedAt = s.now()
	}
	t.UpdatedAt = t.AssignedAt
	if t.Status == "" {
		t.Status = models.ApprenticeTaskAssigned
	}
	key := apprenticeTaskKey(t.ProjectTaskID, t.ApprenticeID)
	what := fmt.Sprintf("task %s assigned to %s", t.ProjectTaskID, t.ApprenticeID)
	return s.createUnique(ctx, key, t.ID, what, func() error {
		return create(ctx, s.colls[projectApprenticeTasks], "apprentice task", t.ID, t)
	})
}

func (s *Store) UpdateApprenticeTask(ctx context.Context, t *models.ProjectApprenticeTask) error {
	t.UpdatedAt = s.now()
	return replace(ctx, s.colls[projectApprenticeTasks], "apprentice task", t.ID, t)
}

func (s *Store) ApprenticeTask(ctx context.Context, id string) (*models.ProjectApprenticeTask, error) {
	return get(ctx, s.colls[projectApprenticeTasks], "apprentice task", id, &models.ProjectApprenticeTask{ID: id})
}

func (s *Store) ApprenticeTasksByProject(ctx context.Context, projectID string) ([]*models.ProjectApprenticeTask, error) {
	return list(ctx, s.colls[projectApprenticeTasks], "projectId", projectID, apprenticeTaskOrder)
}

func (s *Store) ApprenticeTasksByTask(ctx context.Context, projectTaskID string) ([]*models.ProjectApprenticeTask, error) {
	return list(ctx, s.colls[projectApprenticeTasks], "projectTaskId", projectTaskID, apprenticeTaskOrder)
}

package store

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
)

var projectOrder = byTime(
	func(p *models.Project) time.Time { return p.CreatedAt },
	func(p *models.Project) string { return p.ID },
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if p.Status == "" {
		p.Status = models.ProjectDraft
	}
	return create(ctx, s.colls[projects], "project", p.ID, p)
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	return replace(ctx, s.colls[projects], "project", p.ID, p)
}

func (s *Store) Project(ctx context.Context, id string) (*models.Project, error) {
	return get(ctx, s.colls[projects], "project", id, &models.Project{ID: id})
}

func (s *Store) Projects(ctx context.Context) ([]*models.Project, error) {
	return list(ctx, s.colls[projects], "", "", projectOrder)
}

func (s *Store) ProjectsByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	return list(ctx, s.colls[projects], "ownerId", ownerID, projectOrder)
}

func (s *Store) AddProjectTrade(ctx context.Context, t *models.ProjectTrade) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	return create(ctx, s.colls[projectTrades], "project trade", t.ID, t)
}

func (s *Store) ProjectTrade(ctx context.Context, id string) (*models.ProjectTrade, error) {
	return get(ctx, s.colls[projectTrades], "project trade", id, &models.ProjectTrade{ID: id})
}

func (s *Store) ProjectTrades(ctx context.Context, projectID string) ([]*models.ProjectTrade, error) {
	return list(ctx, s.colls[projectTrades], "projectId", projectID, byTime(
		func(t *models.ProjectTrade) time.Time { return t.CreatedAt },
		func(t *models.ProjectTrade) string { return t.ID },
	))
}

func (s *Store) AddProjectComment(ctx context.Context, c *models.ProjectComment) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	return create(ctx, s.colls[projectComments], "project comment", c.ID, c)
}

func (s *Store) ProjectComments(ctx context.Context, projectID string) ([]*models.ProjectComment, error) {
	return list(ctx, s.colls[projectComments], "projectId", projectID, byTime(
		func(c *models.ProjectComment) time.Time { return c.CreatedAt },
		func(c *models.ProjectComment) string { return c.ID },
	))
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.appointy.com/guild/internal/models"
)

// EnrollProjectStudent stores an enrolment. A user account is enrolled on a
// project at most once.
func (s *Store) EnrollProjectStudent(ctx context.Context, st *models.ProjectStudent) error {
	if st.ID == "" {
		st.ID = newID()
	}
	if st.EnrolledAt.IsZero() {
		st.EnrolledAt = s.now()
	}
	key := projectStudentKey(st.ProjectID, st.UserAccountID)
	what := fmt.Sprintf("user account %s enrolled on project %s", st.UserAccountID, st.ProjectID)
	return s.createUnique(ctx, key, st.ID, what, func() error {
		return create(ctx, s.colls[projectStudents], "project student", st.ID, st)
	})
}

func (s *Store) ProjectStudents(ctx context.Context, projectID string) ([]*models.ProjectStudent, error) {
	return list(ctx, s.colls[projectStudents], "projectId", projectID, byTime(
		func(st *models.ProjectStudent) time.Time { return st.EnrolledAt },
		func(st *models.ProjectStudent) string { return st.ID },
	))
}

// AddProjectMasterTradesman stores a supervisor. The project, user account
// and trade together are unique; an empty trade counts as a value.
func (s *Store) AddProjectMasterTradesman(ctx context.Context, m *models.ProjectMasterTradesman) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = s.now()
	}
	key := projectMasterTradesmanKey(m.ProjectID, m.UserAccountID, m.ProjectTradeID)
	what := fmt.Sprintf("user account %s supervising project %s", m.UserAccountID, m.ProjectID)
	return s.createUnique(ctx, key, m.ID, what, func() error {
		return create(ctx, s.colls[projectMasterTradesmen], "project master tradesman", m.ID, m)
	})
}

func (s *Store) ProjectMasterTradesmen(ctx context.Context, projectID string) ([]*models.ProjectMasterTradesman, error) {
	return list(ctx, s.colls[projectMasterTradesmen], "projectId", projectID, byTime(
		func(m *models.ProjectMasterTradesman) time.Time { return m.JoinedAt },
		func(m *models.ProjectMasterTradesman) string { return m.ID },
	))
}

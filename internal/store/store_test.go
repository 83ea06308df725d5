package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestOpen(t *testing.T) {
	_, err := store.Open(context.Background(), "mem://projects/id")
	require.Error(t, err)

	_, err = store.Open(context.Background(), "nosuchscheme://{collection}/id")
	require.Error(t, err)
}

func TestUserAccounts(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	first := &models.UserAccount{Email: " Ada@Example.com ", DisplayName: "Ada", Role: models.RoleMasterTradesman}
	require.NoError(t, s.CreateUserAccount(ctx, first))
	require.NotEmpty(t, first.ID)
	require.False(t, first.CreatedAt.IsZero())
	require.Equal(t, "ada@example.com", first.Email)

	got, err := s.UserAccount(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.DisplayName, got.DisplayName)
	require.Equal(t, models.RoleMasterTradesman, got.Role)

	err = s.CreateUserAccount(ctx, &models.UserAccount{Email: "ADA@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	second := &models.UserAccount{Email: "bo@example.com", CreatedAt: first.CreatedAt.Add(time.Minute)}
	require.NoError(t, s.CreateUserAccount(ctx, second))

	all, err := s.UserAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
	require.Equal(t, second.ID, all[1].ID)

	byEmail, err := s.UserAccountByEmail(ctx, "BO@example.com")
	require.NoError(t, err)
	require.Equal(t, second.ID, byEmail.ID)

	none, err := s.UserAccountByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, none)

	_, err = s.UserAccount(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UserAccount(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExternalAccountsAndProfiles(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	user := &models.UserAccount{Email: "ada@example.com"}
	require.NoError(t, s.CreateUserAccount(ctx, user))

	require.NoError(t, s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: user.ID, Provider: models.ProviderGoogle, ExternalID: "g-1"}))
	require.NoError(t, s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: "someone-else", Provider: models.ProviderLinkedIn, ExternalID: "l-1"}))

	linked, err := s.ExternalAccounts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	require.Equal(t, models.ProviderGoogle, linked[0].Provider)

	_, err = s.UserProfile(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveUserProfile(ctx, &models.UserProfile{UserAccountID: user.ID, FirstName: "Ada"}))
	require.NoError(t, s.SaveUserProfile(ctx, &models.UserProfile{UserAccountID: user.ID, FirstName: "Ada", LastName: "Lovelace"}))

	profile, err := s.UserProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.ID)
	require.Equal(t, "Lovelace", profile.LastName)
}

func TestProjectGraph(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	project := &models.Project{OwnerID: "owner", Title: "Timber frame barn"}
	require.NoError(t, s.CreateProject(ctx, project))
	require.Equal(t, models.ProjectDraft, project.Status)

	other := &models.Project{OwnerID: "someone", Title: "Stone wall"}
	require.NoError(t, s.CreateProject(ctx, other))

	owned, err := s.ProjectsByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	project.Status = models.ProjectOpen
	require.NoError(t, s.UpdateProject(ctx, project))
	reloaded, err := s.Project(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, models.ProjectOpen, reloaded.Status)
	require.Nil(t, reloaded.StartsAt)

	require.ErrorIs(t, s.UpdateProject(ctx, &models.Project{ID: "missing"}), store.ErrNotFound)

	trade := &models.ProjectTrade{ProjectID: project.ID, Name: "Carpentry"}
	require.NoError(t, s.AddProjectTrade(ctx, trade))
	trades, err := s.ProjectTrades(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	gotTrade, err := s.ProjectTrade(ctx, trade.ID)
	require.NoError(t, err)
	require.Equal(t, "Carpentry", gotTrade.Name)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddProjectComment(ctx, &models.ProjectComment{ProjectID: project.ID, Body: "second", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.AddProjectComment(ctx, &models.ProjectComment{ProjectID: project.ID, Body: "first", CreatedAt: base}))
	comments, err := s.ProjectComments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "first", comments[0].Body)
	require.Equal(t, "second", comments[1].Body)

	task := &models.ProjectTask{ProjectID: project.ID, Title: "Cut joints"}
	require.NoError(t, s.CreateProjectTask(ctx, task))
	require.Equal(t, models.TaskTodo, task.Status)
	tasks, err := s.ProjectTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assignment := &models.ProjectApprenticeTask{ProjectID: project.ID, ProjectTaskID: task.ID, ApprenticeID: "apprentice"}
	require.NoError(t, s.AssignApprenticeTask(ctx, assignment))
	require.Equal(t, models.ApprenticeTaskAssigned, assignment.Status)

	assignment.Status = models.ApprenticeTaskSubmitted
	require.NoError(t, s.UpdateApprenticeTask(ctx, assignment))
	gotAssignment, err := s.ApprenticeTask(ctx, assignment.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApprenticeTaskSubmitted, gotAssignment.Status)

	byTask, err := s.ApprenticeTasksByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, byTask, 1)
	byProject, err := s.ApprenticeTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)

	require.NoError(t, s.EnrollProjectStudent(ctx, &models.ProjectStudent{ProjectID: project.ID, UserAccountID: "student"}))
	students, err := s.ProjectStudents(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)

	require.NoError(t, s.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: project.ID, UserAccountID: "master", ProjectTradeID: trade.ID}))
	masters, err := s.ProjectMasterTradesmen(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, masters, 1)
	require.Equal(t, trade.ID, masters[0].ProjectTradeID)

	empty, err := s.ProjectStudents(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, empty)
}

// concurrently releases n calls of fn at once and returns how many succeeded.
// Every failure must be ErrAlreadyExists.
func concurrently(t *testing.T, n int, fn func() error) int {
	t.Helper()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		start   = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := fn()
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, store.ErrAlreadyExists)
		}()
	}
	close(start)
	wg.Wait()
	return created
}

func TestUniqueUnderConcurrency(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		create func(s *store.Store) error
		count  func(s *store.Store) (int, error)
	}{
		{
			name: "email",
			create: func(s *store.Store) error {
				return s.CreateUserAccount(ctx, &models.UserAccount{Email: "dup@example.com"})
			},
			count: func(s *store.Store) (int, error) {
				all, err := s.UserAccounts(ctx)
				return len(all), err
			},
		},
		{
			name: "external account provider",
			create: func(s *store.Store) error {
				return s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: "ada", Provider: models.ProviderGoogle, ExternalID: "g"})
			},
			count: func(s *store.Store) (int, error) {
				all, err := s.ExternalAccounts(ctx, "ada")
				return len(all), err
			},
		},
		{
			name: "apprentice task",
			create: func(s *store.Store) error {
				return s.AssignApprenticeTask(ctx, &models.ProjectApprenticeTask{ProjectID: "p", ProjectTaskID: "t", ApprenticeID: "a"})
			},
			count: func(s *store.Store) (int, error) {
				all, err := s.ApprenticeTasksByTask(ctx, "t")
				return len(all), err
			},
		},
		{
			name: "enrolment",
			create: func(s *store.Store) error {
				return s.EnrollProjectStudent(ctx, &models.ProjectStudent{ProjectID: "p", UserAccountID: "student"})
			},
			count: func(s *store.Store) (int, error) {
				all, err := s.ProjectStudents(ctx, "p")
				return len(all), err
			},
		},
		{
			name: "master tradesman",
			create: func(s *store.Store) error {
				return s.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: "p", UserAccountID: "master"})
			},
			count: func(s *store.Store) (int, error) {
				all, err := s.ProjectMasterTradesmen(ctx, "p")
				return len(all), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openStore(t)

			assert.Equal(t, 1, concurrently(t, 64, func() error { return tt.create(s) }))

			stored, err := tt.count(s)
			require.NoError(t, err)
			assert.Equal(t, 1, stored)

			require.ErrorIs(t, tt.create(s), store.ErrAlreadyExists)
		})
	}
}

func TestUniqueScopes(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: "ada", Provider: models.ProviderGoogle}))
	require.NoError(t, s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: "ada", Provider: models.ProviderLinkedIn}))
	require.NoError(t, s.LinkExternalAccount(ctx, &models.ExternalAccount{UserAccountID: "bo", Provider: models.ProviderGoogle}))

	require.NoError(t, s.EnrollProjectStudent(ctx, &models.ProjectStudent{ProjectID: "p1", UserAccountID: "student"}))
	require.NoError(t, s.EnrollProjectStudent(ctx, &models.ProjectStudent{ProjectID: "p2", UserAccountID: "student"}))

	require.NoError(t, s.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: "p1", UserAccountID: "master"}))
	require.NoError(t, s.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: "p1", UserAccountID: "master", ProjectTradeID: "joinery"}))
	err := s.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: "p1", UserAccountID: "master", ProjectTradeID: "joinery"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, s.CreateUserAccount(ctx, &models.UserAccount{ID: "taken", Email: "first@example.com"}))
	err = s.CreateUserAccount(ctx, &models.UserAccount{ID: "taken", Email: "second@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	require.NoError(t, s.CreateUserAccount(ctx, &models.UserAccount{Email: "second@example.com"}), "failed create must release the email")
}

func TestContext(t *testing.T) {
	_, err := store.FromContext(context.Background())
	require.True(t, errors.Is(err, store.ErrNoStore))

	s := openStore(t)
	got, err := store.FromContext(store.WithStore(context.Background(), s))
	require.NoError(t, err)
	require.Same(t, s, got)
}

package resolvers

import (
	"context"
	"errors"
	"strings"

	"go.appointy.com/guild/internal/ctxlog"
	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/jerrors"
	"go.appointy.com/guild/schemabuilder"
)

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return jerrors.New(jerrors.InvalidArgument, "%s must not be empty", name)
	}
	return nil
}

func RegisterUserMutations(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("createUserAccount", func(ctx context.Context, args struct {
		Input CreateUserAccountInput
	}) (*models.UserAccount, error) {
		if !strings.Contains(args.Input.Email, "@") {
			return nil, jerrors.New(jerrors.InvalidArgument, "email %q is not an address", args.Input.Email)
		}

		account := &models.UserAccount{
			Email:       args.Input.Email,
			DisplayName: strings.TrimSpace(args.Input.DisplayName),
			Role:        args.Input.Role,
		}
		if err := s.store.CreateUserAccount(ctx, account); err != nil {
			return nil, convertError(err)
		}
		ctxlog.FromContext(ctx).Info("user account created", "id", account.ID, "role", account.Role)
		return account, nil
	}, schemabuilder.FieldDesc("Creates an account. Email addresses are unique, ignoring case."))

	m.FieldFunc("linkExternalAccount", func(ctx context.Context, args struct {
		UserAccountID schemabuilder.ID
		Provider      models.AccountProvider
		ExternalID    string
	}) (*models.ExternalAccount, error) {
		if err := required("externalId", args.ExternalID); err != nil {
			return nil, err
		}
		if _, err := s.store.UserAccount(ctx, args.UserAccountID.Value); err != nil {
			return nil, convertError(err)
		}

		account := &models.ExternalAccount{
			UserAccountID: args.UserAccountID.Value,
			Provider:      args.Provider,
			ExternalID:    args.ExternalID,
		}
		if err := s.store.LinkExternalAccount(ctx, account); err != nil {
			return nil, convertError(err)
		}
		return account, nil
	})

	m.FieldFunc("updateUserProfile", func(ctx context.Context, args struct {
		Input UpdateUserProfileInput
	}) (*models.UserProfile, error) {
		in := args.Input
		if _, err := s.store.UserAccount(ctx, in.UserAccountID); err != nil {
			return nil, convertError(err)
		}

		profile, err := s.store.UserProfile(ctx, in.UserAccountID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			profile = &models.UserProfile{UserAccountID: in.UserAccountID}
		case err != nil:
			return nil, convertError(err)
		}

		set := func(dst *string, src *string) {
			if src != nil {
				*dst = strings.TrimSpace(*src)
			}
		}
		set(&profile.FirstName, in.FirstName)
		set(&profile.LastName, in.LastName)
		set(&profile.Bio, in.Bio)
		set(&profile.Location, in.Location)

		if err := s.store.SaveUserProfile(ctx, profile); err != nil {
			return nil, convertError(err)
		}
		return profile, nil
	}, schemabuilder.FieldDesc("Creates or updates the profile of a user account."))
}

// finalProjectStatus reports whether a project in status can no longer change.
func finalProjectStatus(status models.ProjectStatus) bool {
	return status == models.ProjectCompleted || status == models.ProjectCancelled
}

func RegisterProjectMutations(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("createProject", func(ctx context.Context, args struct {
		Input CreateProjectInput
	}) (*models.Project, error) {
		in := args.Input
		if err := required("title", in.Title); err != nil {
			return nil, err
		}
		if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
			return nil, jerrors.New(jerrors.InvalidArgument, "endsAt is before startsAt")
		}
		if _, err := s.store.UserAccount(ctx, in.OwnerID); err != nil {
			return nil, convertError(err)
		}

		project := &models.Project{
			OwnerID:     in.OwnerID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			StartsAt:    in.StartsAt,
			EndsAt:      in.EndsAt,
		}
		if err := s.store.CreateProject(ctx, project); err != nil {
			return nil, convertError(err)
		}
		ctxlog.FromContext(ctx).Info("project created", "id", project.ID, "owner", project.OwnerID)
		return project, nil
	})

	m.FieldFunc("updateProjectStatus", func(ctx context.Context, args struct {
		ID     schemabuilder.ID
		Status models.ProjectStatus
	}) (*models.Project, error) {
		project, err := s.store.Project(ctx, args.ID.Value)
		if err != nil {
			return nil, convertError(err)
		}
		if project.Status == args.Status {
			return project, nil
		}
		if finalProjectStatus(project.Status) {
			return nil, jerrors.New(jerrors.FailedPrecondition, "project %s is %s", project.ID, project.Status)
		}

		project.Status = args.Status
		if err := s.store.UpdateProject(ctx, project); err != nil {
			return nil, convertError(err)
		}
		return project, nil
	}, schemabuilder.FieldDesc("Moves a project to another status. COMPLETED and CANCELLED projects can not change."))

	m.FieldFunc("addProjectTrade", func(ctx context.Context, args struct {
		ProjectID   schemabuilder.ID
		Name        string
		Description *string
	}) (*models.ProjectTrade, error) {
		if err := required("name", args.Name); err != nil {
			return nil, err
		}
		if _, err := s.store.Project(ctx, args.ProjectID.Value); err != nil {
			return nil, convertError(err)
		}

		trade := &models.ProjectTrade{ProjectID: args.ProjectID.Value, Name: strings.TrimSpace(args.Name)}
		if args.Description != nil {
			trade.Description = *args.Description
		}
		if err := s.store.AddProjectTrade(ctx, trade); err != nil {
			return nil, convertError(err)
		}
		return trade, nil
	})

	m.FieldFunc("addProjectComment", func(ctx context.Context, args struct {
		ProjectID schemabuilder.ID
		AuthorID  schemabuilder.ID
		Body      string
	}) (*models.ProjectComment, error) {
		if err := required("body", args.Body); err != nil {
			return nil, err
		}
		if _, err := s.store.Project(ctx, args.ProjectID.Value); err != nil {
			return nil, convertError(err)
		}
		if _, err := s.store.UserAccount(ctx, args.AuthorID.Value); err != nil {
			return nil, convertError(err)
		}

		comment := &models.ProjectComment{
			ProjectID: args.ProjectID.Value,
			AuthorID:  args.AuthorID.Value,
			Body:      args.Body,
		}
		if err := s.store.AddProjectComment(ctx, comment); err != nil {
			return nil, convertError(err)
		}

		delivered := s.comments.Publish(comment.ProjectID, comment)
		ctxlog.FromContext(ctx).Debug("project comment published", "project", comment.ProjectID, "subscribers", delivered)
		return comment, nil
	}, schemabuilder.FieldDesc("Posts a comment and notifies projectCommentAdded subscribers."))
}

func RegisterTaskMutations(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("createProjectTask", func(ctx context.Context, args struct {
		Input CreateProjectTaskInput
	}) (*models.ProjectTask, error) {
		in := args.Input
		if err := required("title", in.Title); err != nil {
			return nil, err
		}
		project, err := s.store.Project(ctx, in.ProjectID)
		if err != nil {
			return nil, convertError(err)
		}
		if finalProjectStatus(project.Status) {
			return nil, jerrors.New(jerrors.FailedPrecondition, "project %s is %s", project.ID, project.Status)
		}

		task := &models.ProjectTask{
			ProjectID:   in.ProjectID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			DueAt:       in.DueAt,
		}
		if err := s.store.CreateProjectTask(ctx, task); err != nil {
			return nil, convertError(err)
		}
		return task, nil
	})

	m.FieldFunc("assignApprenticeTask", func(ctx context.Context, args struct {
		ProjectTaskID schemabuilder.ID
		ApprenticeID  schemabuilder.ID
	}) (*models.ProjectApprenticeTask, error) {
		task, err := s.store.ProjectTask(ctx, args.ProjectTaskID.Value)
		if err != nil {
			return nil, convertError(err)
		}
		apprentice, err := s.store.UserAccount(ctx, args.ApprenticeID.Value)
		if err != nil {
			return nil, convertError(err)
		}
		if apprentice.Role != models.RoleApprentice {
			return nil, jerrors.New(jerrors.FailedPrecondition, "user account %s is not an apprentice", apprentice.ID)
		}

		assignment := &models.ProjectApprenticeTask{
			ProjectID:     task.ProjectID,
			ProjectTaskID: task.ID,
			ApprenticeID:  apprentice.ID,
		}
		if err := s.store.AssignApprenticeTask(ctx, assignment); err != nil {
			return nil, convertError(err)
		}
		return assignment, nil
	})

	m.FieldFunc("updateApprenticeTaskStatus", func(ctx context.Context, args struct {
		ID     schemabuilder.ID
		Status models.ApprenticeTaskStatus
	}) (*models.ProjectApprenticeTask, error) {
		assignment, err := s.store.ApprenticeTask(ctx, args.ID.Value)
		if err != nil {
			return nil, convertError(err)
		}
		if assignment.Status == models.ApprenticeTaskApproved && args.Status != models.ApprenticeTaskApproved {
			return nil, jerrors.New(jerrors.FailedPrecondition, "apprentice task %s is already approved", assignment.ID)
		}

		assignment.Status = args.Status
		if err := s.store.UpdateApprenticeTask(ctx, assignment); err != nil {
			return nil, convertError(err)
		}
		return assignment, nil
	}, schemabuilder.FieldDesc("Records review progress. Approved work can not be reopened."))
}

func RegisterMemberMutations(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("enrollProjectStudent", func(ctx context.Context, args struct {
		ProjectID     schemabuilder.ID
		UserAccountID schemabuilder.ID
	}) (*models.ProjectStudent, error) {
		if _, err := s.store.Project(ctx, args.ProjectID.Value); err != nil {
			return nil, convertError(err)
		}
		if _, err := s.store.UserAccount(ctx, args.UserAccountID.Value); err != nil {
			return nil, convertError(err)
		}

		student := &models.ProjectStudent{ProjectID: args.ProjectID.Value, UserAccountID: args.UserAccountID.Value}
		if err := s.store.EnrollProjectStudent(ctx, student); err != nil {
			return nil, convertError(err)
		}
		return student, nil
	})

	m.FieldFunc("addProjectMasterTradesman", func(ctx context.Context, args struct {
		ProjectID      schemabuilder.ID
		UserAccountID  schemabuilder.ID
		ProjectTradeID *schemabuilder.ID
	}) (*models.ProjectMasterTradesman, error) {
		if _, err := s.store.Project(ctx, args.ProjectID.Value); err != nil {
			return nil, convertError(err)
		}
		if _, err := s.store.UserAccount(ctx, args.UserAccountID.Value); err != nil {
			return nil, convertError(err)
		}

		tradeID := ""
		if args.ProjectTradeID != nil {
			trade, err := s.store.ProjectTrade(ctx, args.ProjectTradeID.Value)
			if err != nil {
				return nil, convertError(err)
			}
			if trade.ProjectID != args.ProjectID.Value {
				return nil, jerrors.New(jerrors.InvalidArgument, "trade %s belongs to another project", trade.ID)
			}
			tradeID = trade.ID
		}

		master := &models.ProjectMasterTradesman{
			ProjectID:      args.ProjectID.Value,
			UserAccountID:  args.UserAccountID.Value,
			ProjectTradeID: tradeID,
		}
		if err := s.store.AddProjectMasterTradesman(ctx, master); err != nil {
			return nil, convertError(err)
		}
		return master, nil
	}, schemabuilder.FieldDesc("Adds a supervising tradesman, optionally for one of the project's trades."))
}

func RegisterMutation(sb *schemabuilder.Schema, s *Server) {
	RegisterUserMutations(sb, s)
	RegisterProjectMutations(sb, s)
	RegisterTaskMutations(sb, s)
	RegisterMemberMutations(sb, s)
}

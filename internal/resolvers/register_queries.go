package resolvers

import (
	"context"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/resolvers/types"
	"go.appointy.com/guild/schemabuilder"
)

func RegisterRegistryQueries(sb *schemabuilder.Schema) {
	q := sb.Query()

	q.FieldFunc("registeredTypes", func() []*RegisteredType {
		registry := types.All()
		out := make([]*RegisteredType, 0, registry.Len())
		for _, obj := range registry.Entries() {
			out = append(out, registeredType(obj))
		}
		return out
	}, schemabuilder.FieldDesc("Object types of the registry in declaration order."))

	q.FieldFunc("registeredType", func(args struct{ Name string }) (*RegisteredType, error) {
		obj, err := types.All().Get(args.Name)
		if err != nil {
			return nil, convertError(err)
		}
		return registeredType(obj), nil
	}, schemabuilder.FieldDesc("Looks up a registry entry by its exact, case-sensitive name."))
}

func RegisterUserQueries(sb *schemabuilder.Schema, s *Server) {
	q := sb.Query()

	q.FieldFunc("userAccount", func(ctx context.Context, args struct{ ID schemabuilder.ID }) (*models.UserAccount, error) {
		account, err := s.store.UserAccount(ctx, args.ID.Value)
		return account, convertError(err)
	})

	q.FieldFunc("userAccountByEmail", func(ctx context.Context, args struct{ Email string }) (*models.UserAccount, error) {
		account, err := s.store.UserAccountByEmail(ctx, args.Email)
		return account, convertError(err)
	}, schemabuilder.FieldDesc("Null when no account uses the address."))

	q.FieldFunc("userAccounts", func(ctx context.Context) ([]*models.UserAccount, error) {
		accounts, err := s.store.UserAccounts(ctx)
		return accounts, convertError(err)
	}, schemabuilder.FieldDesc("All accounts, oldest first."))
}

func RegisterProjectQueries(sb *schemabuilder.Schema, s *Server) {
	q := sb.Query()

	q.FieldFunc("project", func(ctx context.Context, args struct{ ID schemabuilder.ID }) (*models.Project, error) {
		project, err := s.store.Project(ctx, args.ID.Value)
		return project, convertError(err)
	})

	q.FieldFunc("projects", func(ctx context.Context, args struct {
		Status *models.ProjectStatus
	}) ([]*models.Project, error) {
		projects, err := s.store.Projects(ctx)
		if err != nil {
			return nil, convertError(err)
		}
		if args.Status == nil {
			return projects, nil
		}

		filtered := projects[:0]
		for _, p := range projects {
			if p.Status == *args.Status {
				filtered = append(filtered, p)
			}
		}
		return filtered, nil
	}, schemabuilder.FieldDesc("Projects, oldest first, optionally only those in one status."))

	q.FieldFunc("projectTask", func(ctx context.Context, args struct{ ID schemabuilder.ID }) (*models.ProjectTask, error) {
		task, err := s.store.ProjectTask(ctx, args.ID.Value)
		return task, convertError(err)
	})
}

func RegisterQuery(sb *schemabuilder.Schema, s *Server) {
	RegisterRegistryQueries(sb)
	RegisterUserQueries(sb, s)
	RegisterProjectQueries(sb, s)
}

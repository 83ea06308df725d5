package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// UserAccount is a person signed up to the guild.
var UserAccount = newUserAccount()

func newUserAccount() *schemabuilder.Object {
	obj := schemabuilder.NewObject("UserAccount", models.UserAccount{}, "A person signed up to the guild.")

	obj.FieldFunc("id", func(in *models.UserAccount) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("email", func(in *models.UserAccount) string {
		return in.Email
	})
	obj.FieldFunc("displayName", func(in *models.UserAccount) string {
		return in.DisplayName
	})
	obj.FieldFunc("role", func(in *models.UserAccount) models.UserRole {
		return in.Role
	})
	obj.FieldFunc("createdAt", func(in *models.UserAccount) time.Time {
		return in.CreatedAt
	})

	obj.FieldFunc("profile", func(ctx context.Context, in *models.UserAccount) (*models.UserProfile, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserProfile(ctx, in.ID))
	}, schemabuilder.FieldDesc("Null until the profile is first saved."))

	obj.FieldFunc("externalAccounts", func(ctx context.Context, in *models.UserAccount) ([]*models.ExternalAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ExternalAccounts(ctx, in.ID)
	})

	obj.FieldFunc("projects", func(ctx context.Context, in *models.UserAccount) ([]*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return s.ProjectsByOwner(ctx, in.ID)
	})

	return obj
}

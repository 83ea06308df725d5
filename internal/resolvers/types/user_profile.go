package types

import (
	"context"
	"strings"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// UserProfile holds the public details of a user account.
var UserProfile = newUserProfile()

func newUserProfile() *schemabuilder.Object {
	obj := schemabuilder.NewObject("UserProfile", models.UserProfile{})

	obj.FieldFunc("id", func(in *models.UserProfile) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("firstName", func(in *models.UserProfile) string {
		return in.FirstName
	})
	obj.FieldFunc("lastName", func(in *models.UserProfile) string {
		return in.LastName
	})
	obj.FieldFunc("fullName", func(in *models.UserProfile) string {
		return strings.TrimSpace(in.FirstName + " " + in.LastName)
	})
	obj.FieldFunc("bio", func(in *models.UserProfile) string {
		return in.Bio
	})
	obj.FieldFunc("location", func(in *models.UserProfile) string {
		return in.Location
	})
	obj.FieldFunc("updatedAt", func(in *models.UserProfile) time.Time {
		return in.UpdatedAt
	})

	obj.FieldFunc("userAccount", func(ctx context.Context, in *models.UserProfile) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.UserAccountID))
	})

	return obj
}

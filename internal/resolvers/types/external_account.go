package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ExternalAccount is a login at an identity provider linked to a user account.
var ExternalAccount = newExternalAccount()

func newExternalAccount() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ExternalAccount", models.ExternalAccount{}, "An identity provider login linked to a user account.")

	obj.FieldFunc("id", func(in *models.ExternalAccount) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("provider", func(in *models.ExternalAccount) models.AccountProvider {
		return in.Provider
	})
	obj.FieldFunc("externalId", func(in *models.ExternalAccount) string {
		return in.ExternalID
	}, schemabuilder.FieldDesc("Subject identifier issued by the provider."))
	obj.FieldFunc("linkedAt", func(in *models.ExternalAccount) time.Time {
		return in.LinkedAt
	})

	obj.FieldFunc("userAccount", func(ctx context.Context, in *models.ExternalAccount) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.UserAccountID))
	})

	return obj
}

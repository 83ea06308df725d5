package store

import (
	"context"
	"fmt"
	"time"

	"go.appointy.com/guild/internal/models"
)

var userAccountOrder = byTime(
	func(a *models.UserAccount) time.Time { return a.CreatedAt },
	func(a *models.UserAccount) string { return a.ID },
)

// CreateUserAccount stores a new account. Emails are unique, compared case
// insensitively.
func (s *Store) CreateUserAccount(ctx context.Context, a *models.UserAccount) error {
	a.Email = normalizeEmail(a.Email)
	if a.ID == "" {
		a.ID = newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	return s.createUnique(ctx, emailKey(a.Email), a.ID, fmt.Sprintf("user account with email %q", a.Email), func() error {
		return create(ctx, s.colls[userAccounts], "user account", a.ID, a)
	})
}

func (s *Store) UserAccount(ctx context.Context, id string) (*models.UserAccount, error) {
	return get(ctx, s.colls[userAccounts], "user account", id, &models.UserAccount{ID: id})
}

// UserAccountByEmail returns nil without error when no account uses email.
func (s *Store) UserAccountByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	accounts, err := list(ctx, s.colls[userAccounts], "email", normalizeEmail(email), userAccountOrder)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return accounts[0], nil
}

func (s *Store) UserAccounts(ctx context.Context) ([]*models.UserAccount, error) {
	return list(ctx, s.colls[userAccounts], "", "", userAccountOrder)
}

// LinkExternalAccount stores a login. A user account has at most one login
// per provider.
func (s *Store) LinkExternalAccount(ctx context.Context, a *models.ExternalAccount) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.LinkedAt.IsZero() {
		a.LinkedAt = s.now()
	}
	key := externalAccountKey(a.UserAccountID, string(a.Provider))
	what := fmt.Sprintf("user account %s %s login", a.UserAccountID, a.Provider)
	return s.createUnique(ctx, key, a.ID, what, func() error {
		return create(ctx, s.colls[externalAccounts], "external account", a.ID, a)
	})
}

func (s *Store) ExternalAccounts(ctx context.Context, userAccountID string) ([]*models.ExternalAccount, error) {
	return list(ctx, s.colls[externalAccounts], "userAccountId", userAccountID, byTime(
		func(a *models.ExternalAccount) time.Time { return a.LinkedAt },
		func(a *models.ExternalAccount) string { return a.ID },
	))
}

// UserProfile returns the profile of a user account.
func (s *Store) UserProfile(ctx context.Context, userAccountID string) (*models.UserProfile, error) {
	return get(ctx, s.colls[userProfiles], "user profile", userAccountID, &models.UserProfile{ID: userAccountID})
}

// SaveUserProfile creates or overwrites the profile of p.UserAccountID.
func (s *Store) SaveUserProfile(ctx context.Context, p *models.UserProfile) error {
	p.ID = p.UserAccountID
	p.UpdatedAt = s.now()
	if err := s.colls[userProfiles].Put(ctx, p); err != nil {
		return convertError(err, "user profile", p.ID)
	}
	return nil
}

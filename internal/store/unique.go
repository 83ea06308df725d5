package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// uniqueKey reserves one value of a unique tuple. A second Create with the
// same ID fails with AlreadyExists.
type uniqueKey struct {
	ID    string `docstore:"id"`
	Owner string `docstore:"owner"`
}

func emailKey(email string) string {
	return "email/" + email
}

func externalAccountKey(userAccountID, provider string) string {
	return "external-account/" + userAccountID + "/" + provider
}

func apprenticeTaskKey(projectTaskID, apprenticeID string) string {
	return "apprentice-task/" + projectTaskID + "/" + apprenticeID
}

func projectStudentKey(projectID, userAccountID string) string {
	return "project-student/" + projectID + "/" + userAccountID
}

func projectMasterTradesmanKey(projectID, userAccountID, projectTradeID string) string {
	return "project-master-tradesman/" + projectID + "/" + userAccountID + "/" + projectTradeID
}

// createUnique claims key for owner and then stores the document with
// insert. The claim is released again if insert fails. what describes the
// tuple in the ErrAlreadyExists error.
func (s *Store) createUnique(ctx context.Context, key, owner, what string, insert func() error) error {
	coll := s.colls[uniqueKeys]
	if err := coll.Create(ctx, &uniqueKey{ID: key, Owner: owner}); err != nil {
		err = convertError(err, "unique key", key)
		if errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", what, ErrAlreadyExists)
		}
		return err
	}

	if err := insert(); err != nil {
		if derr := coll.Delete(ctx, &uniqueKey{ID: key}); derr != nil {
			return errors.Join(err, convertError(derr, "unique key", key))
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

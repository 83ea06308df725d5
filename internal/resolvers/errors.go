package resolvers

import (
	"errors"

	"go.appointy.com/guild/internal/resolvers/types"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/jerrors"
)

// convertError gives store and registry errors a client-facing code.
func convertError(err error) error {
	var coded *jerrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &coded):
		return err
	case errors.Is(err, store.ErrNotFound), errors.Is(err, types.ErrUnknownTypeName):
		return jerrors.New(jerrors.NotFound, "%v", err)
	case errors.Is(err, store.ErrAlreadyExists):
		return jerrors.New(jerrors.AlreadyExists, "%v", err)
	}
	return jerrors.New(jerrors.Internal, "%v", err)
}

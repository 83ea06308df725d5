package store

import (
	"context"
	"errors"
)

type key struct{}

var storeKey = key{}

// ErrNoStore is returned by FromContext when no store was attached.
var ErrNoStore = errors.New("store missing from context")

// WithStore returns a context carrying s for field resolvers.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext returns the store attached with WithStore.
func FromContext(ctx context.Context) (*Store, error) {
	if s, ok := ctx.Value(storeKey).(*Store); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoStore
}

package types

import (
	"errors"

	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// optional resolves a missing related document to null.
func optional[T any](doc *T, err error) (*T, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func id(v string) schemabuilder.ID {
	return schemabuilder.ID{Value: v}
}

// Package store persists the guild documents in gocloud.dev docstore
// collections, one collection per document kind.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/docstore"
	_ "gocloud.dev/docstore/memdocstore"
	"gocloud.dev/gcerrors"
)

// DefaultURL opens in-memory collections keyed by the "id" field. The
// {collection} placeholder is replaced with each collection name.
const DefaultURL = "mem://{collection}/id"

const (
	userAccounts           = "user-accounts"
	externalAccounts       = "external-accounts"
	userProfiles           = "user-profiles"
	projects               = "projects"
	projectTrades          = "project-trades"
	projectComments        = "project-comments"
	projectTasks           = "project-tasks"
	projectApprenticeTasks = "project-apprentice-tasks"
	projectStudents        = "project-students"
	projectMasterTradesmen = "project-master-tradesmen"
	uniqueKeys             = "unique-keys"
)

var collections = []string{
	userAccounts,
	externalAccounts,
	userProfiles,
	projects,
	projectTrades,
	projectComments,
	projectTasks,
	projectApprenticeTasks,
	projectStudents,
	projectMasterTradesmen,
	uniqueKeys,
}

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a document whose key is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Store gives typed access to the guild collections.
type Store struct {
	colls map[string]*docstore.Collection
	now   func() time.Time
}

// Open opens every collection by expanding urlTemplate. An empty template
// means DefaultURL.
func Open(ctx context.Context, urlTemplate string) (*Store, error) {
	if urlTemplate == "" {
		urlTemplate = DefaultURL
	}
	if !strings.Contains(urlTemplate, "{collection}") {
		return nil, fmt.Errorf("store url %q has no {collection} placeholder", urlTemplate)
	}

	s := &Store{
		colls: make(map[string]*docstore.Collection, len(collections)),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, name := range collections {
		coll, err := docstore.OpenCollection(ctx, strings.ReplaceAll(urlTemplate, "{collection}", name))
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("opening collection %s: %w", name, err)
		}
		s.colls[name] = coll
	}

	return s, nil
}

// OpenInMemory opens private in-memory collections, isolated from any other
// store in the process.
func OpenInMemory(ctx context.Context) (*Store, error) {
	return Open(ctx, "mem://{collection}-"+uuid.NewString()+"/id")
}

// Close closes every open collection.
func (s *Store) Close() error {
	var errs []error
	for name, coll := range s.colls {
		if err := coll.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing collection %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func newID() string {
	return uuid.NewString()
}

func convertError(err error, kind, id string) error {
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	case gcerrors.AlreadyExists:
		return fmt.Errorf("%s %q: %w", kind, id, ErrAlreadyExists)
	}
	return fmt.Errorf("%s %q: %w", kind, id, err)
}

func create[T any](ctx context.Context, coll *docstore.Collection, kind, id string, doc *T) error {
	if err := coll.Create(ctx, doc); err != nil {
		return convertError(err, kind, id)
	}
	return nil
}

func replace[T any](ctx context.Context, coll *docstore.Collection, kind, id string, doc *T) error {
	if err := coll.Replace(ctx, doc); err != nil {
		return convertError(err, kind, id)
	}
	return nil
}

// get loads doc, whose key field must already be set.
func get[T any](ctx context.Context, coll *docstore.Collection, kind, id string, doc *T) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: empty id: %w", kind, ErrNotFound)
	}
	if err := coll.Get(ctx, doc); err != nil {
		return nil, convertError(err, kind, id)
	}
	return doc, nil
}

// list returns the documents whose field equals value, or every document
// when field is empty, ordered by cmp.
func list[T any](ctx context.Context, coll *docstore.Collection, field, value string, cmp func(a, b *T) int) ([]*T, error) {
	q := coll.Query()
	if field != "" {
		q = q.Where(docstore.FieldPath(field), "=", value)
	}

	iter := q.Get(ctx)
	defer iter.Stop()

	var out []*T
	for {
		doc := new(T)
		err := iter.Next(ctx, doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", field, err)
		}
		out = append(out, doc)
	}

	slices.SortFunc(out, cmp)
	return out, nil
}

// byTime orders documents by a timestamp, breaking ties on ID.
func byTime[T any](at func(*T) time.Time, id func(*T) string) func(a, b *T) int {
	return func(a, b *T) int {
		if c := at(a).Compare(at(b)); c != 0 {
			return c
		}
		return strings.Compare(id(a), id(b))
	}
}

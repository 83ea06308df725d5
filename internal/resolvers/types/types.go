// Package types defines the GraphQL object types of the guild schema, one
// file per type, and the Registry that names them for schema construction.
package types

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"go.appointy.com/guild/schemabuilder"
)

// ErrUnknownTypeName is returned by Registry.Get for a name that is not
// registered. Lookups are case-sensitive.
var ErrUnknownTypeName = errors.New("unknown type name")

// Registry maps type names to their object descriptors in declaration order.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	names   []string
	objects []*schemabuilder.Object
	index   map[string]int
}

type entry struct {
	name   string
	object *schemabuilder.Object
}

func newRegistry(entries []entry) *Registry {
	r := &Registry{
		names:   make([]string, 0, len(entries)),
		objects: make([]*schemabuilder.Object, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, ok := r.index[e.name]; ok {
			panic(fmt.Sprintf("types: duplicate registration of %s", e.name))
		}
		r.index[e.name] = len(r.names)
		r.names = append(r.names, e.name)
		r.objects = append(r.objects, e.object)
	}
	return r
}

// Build assembles a registry of every guild type. The descriptors are
// shared with the package variables, not copied.
func Build() *Registry {
	return newRegistry([]entry{
		{"UserAccount", UserAccount},
		{"ExternalAccount", ExternalAccount},
		{"UserProfile", UserProfile},
		{"Project", Project},
		{"ProjectTrade", ProjectTrade},
		{"ProjectComment", ProjectComment},
		{"ProjectTask", ProjectTask},
		{"ProjectApprenticeTask", ProjectApprenticeTask},
		{"ProjectStudent", ProjectStudent},
		{"ProjectMasterTradesman", ProjectMasterTradesman},
	})
}

// All returns the process-wide registry, built on first use.
var All = sync.OnceValue(Build)

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*schemabuilder.Object, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeName, name)
	}
	return r.objects[i], nil
}

// Entries yields every (name, descriptor) pair in declaration order. The
// sequence can be ranged over any number of times.
func (r *Registry) Entries() iter.Seq2[string, *schemabuilder.Object] {
	return func(yield func(string, *schemabuilder.Object) bool) {
		for i, name := range r.names {
			if !yield(name, r.objects[i]) {
				return
			}
		}
	}
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.names)
}

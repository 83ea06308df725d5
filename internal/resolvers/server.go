// Package resolvers composes the guild GraphQL schema: it registers the
// object types from package types together with the enums, inputs and root
// operations backed by the store.
package resolvers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go.appointy.com/guild"
	"go.appointy.com/guild/internal/config"
	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/pubsub"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// commentBuffer is the number of comments a slow subscriber may lag behind
// before events are dropped for it.
const commentBuffer = 16

// Server holds the state shared by the root resolvers.
type Server struct {
	store    *store.Store
	comments *pubsub.Broker[*models.ProjectComment]
}

// NewServer returns a Server backed by st.
func NewServer(st *store.Store) *Server {
	return &Server{
		store:    st,
		comments: pubsub.NewBroker[*models.ProjectComment](commentBuffer),
	}
}

// Middleware attaches the store to every request so field resolvers can
// load related documents.
func (s *Server) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(store.WithStore(r.Context(), s.store)))
	})
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetGraphqlServer opens the store described by cfg, builds the schema and
// returns the handler to mount on the GraphQL route. The caller must Close
// the returned Server.
func GetGraphqlServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, *Server, error) {
	st, err := store.Open(ctx, cfg.Store.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	server := NewServer(st)

	sb := schemabuilder.NewSchema()
	RegisterSchema(sb, server)

	schema, err := sb.Build()
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("building schema: %w", err)
	}

	h := guild.HTTPHandler(schema,
		guild.WithLogger(logger),
		guild.WithPlayground(cfg.Playground),
		guild.WithMiddlewares(guild.LoggingMiddleware),
	)
	return server.Middleware(h), server, nil
}

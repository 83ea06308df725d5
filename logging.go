package guild

import (
	"context"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"

	"go.appointy.com/guild/internal/ctxlog"
)

// LoggingMiddleware logs every executed operation with its duration and
// error count, using the logger found in the context.
func LoggingMiddleware(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, params graphql.Params) *graphql.Result {
		start := time.Now()
		result := next(ctx, params)

		level := slog.LevelInfo
		if len(result.Errors) > 0 {
			level = slog.LevelWarn
		}
		ctxlog.FromContext(ctx).Log(ctx, level, "graphql operation",
			"operation", params.OperationName,
			"duration", time.Since(start),
			"errors", len(result.Errors),
		)
		return result
	}
}

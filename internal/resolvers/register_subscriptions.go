package resolvers

import (
	"context"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/schemabuilder"
)

func RegisterSubscription(sb *schemabuilder.Schema, s *Server) {
	sub := sb.Subscription()

	sub.FieldFunc("projectCommentAdded", func(ctx context.Context, args struct {
		ProjectID schemabuilder.ID
	}) (<-chan *models.ProjectComment, error) {
		if _, err := s.store.Project(ctx, args.ProjectID.Value); err != nil {
			return nil, convertError(err)
		}
		return s.comments.Subscribe(ctx, args.ProjectID.Value), nil
	}, schemabuilder.FieldDesc("Streams comments posted on a project from now on."))
}

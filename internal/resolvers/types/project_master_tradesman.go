package types

import (
	"context"
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

// ProjectMasterTradesman is a tradesman supervising work on a project.
var ProjectMasterTradesman = newProjectMasterTradesman()

func newProjectMasterTradesman() *schemabuilder.Object {
	obj := schemabuilder.NewObject("ProjectMasterTradesman", models.ProjectMasterTradesman{}, "A tradesman supervising work on a project.")

	obj.FieldFunc("id", func(in *models.ProjectMasterTradesman) schemabuilder.ID {
		return id(in.ID)
	})
	obj.FieldFunc("joinedAt", func(in *models.ProjectMasterTradesman) time.Time {
		return in.JoinedAt
	})

	obj.FieldFunc("project", func(ctx context.Context, in *models.ProjectMasterTradesman) (*models.Project, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.Project(ctx, in.ProjectID))
	})

	obj.FieldFunc("tradesman", func(ctx context.Context, in *models.ProjectMasterTradesman) (*models.UserAccount, error) {
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.UserAccount(ctx, in.UserAccountID))
	})

	obj.FieldFunc("trade", func(ctx context.Context, in *models.ProjectMasterTradesman) (*models.ProjectTrade, error) {
		if in.ProjectTradeID == "" {
			return nil, nil
		}
		s, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return optional(s.ProjectTrade(ctx, in.ProjectTradeID))
	}, schemabuilder.FieldDesc("Null when the tradesman oversees the whole project."))

	return obj
}

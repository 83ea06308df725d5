package resolvers

import (
	"time"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/schemabuilder"
)

type CreateUserAccountInput struct {
	Email       string
	DisplayName string
	Role        models.UserRole
}

// UpdateUserProfileInput changes only the fields that are provided.
type UpdateUserProfileInput struct {
	UserAccountID string
	FirstName     *string
	LastName      *string
	Bio           *string
	Location      *string
}

type CreateProjectInput struct {
	OwnerID     string
	Title       string
	Description string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

type CreateProjectTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	DueAt       *time.Time
}

func RegisterCreateUserAccountInput(sb *schemabuilder.Schema) {
	input := sb.InputObject("CreateUserAccountInput", CreateUserAccountInput{})
	input.FieldFunc("email", func(target *CreateUserAccountInput, source string) { target.Email = source })
	input.FieldFunc("displayName", func(target *CreateUserAccountInput, source string) { target.DisplayName = source })
	input.FieldFunc("role", func(target *CreateUserAccountInput, source models.UserRole) { target.Role = source })
}

func RegisterUpdateUserProfileInput(sb *schemabuilder.Schema) {
	input := sb.InputObject("UpdateUserProfileInput", UpdateUserProfileInput{}, "Omitted fields keep their current value.")
	input.FieldFunc("userAccountId", func(target *UpdateUserProfileInput, source schemabuilder.ID) { target.UserAccountID = source.Value })
	input.FieldFunc("firstName", func(target *UpdateUserProfileInput, source *string) { target.FirstName = source })
	input.FieldFunc("lastName", func(target *UpdateUserProfileInput, source *string) { target.LastName = source })
	input.FieldFunc("bio", func(target *UpdateUserProfileInput, source *string) { target.Bio = source })
	input.FieldFunc("location", func(target *UpdateUserProfileInput, source *string) { target.Location = source })
}

func RegisterCreateProjectInput(sb *schemabuilder.Schema) {
	input := sb.InputObject("CreateProjectInput", CreateProjectInput{})
	input.FieldFunc("ownerId", func(target *CreateProjectInput, source schemabuilder.ID) { target.OwnerID = source.Value })
	input.FieldFunc("title", func(target *CreateProjectInput, source string) { target.Title = source })
	input.FieldFunc("description", func(target *CreateProjectInput, source *string) {
		if source != nil {
			target.Description = *source
		}
	})
	input.FieldFunc("startsAt", func(target *CreateProjectInput, source *time.Time) { target.StartsAt = source })
	input.FieldFunc("endsAt", func(target *CreateProjectInput, source *time.Time) { target.EndsAt = source })
}

func RegisterCreateProjectTaskInput(sb *schemabuilder.Schema) {
	input := sb.InputObject("CreateProjectTaskInput", CreateProjectTaskInput{})
	input.FieldFunc("projectId", func(target *CreateProjectTaskInput, source schemabuilder.ID) { target.ProjectID = source.Value })
	input.FieldFunc("title", func(target *CreateProjectTaskInput, source string) { target.Title = source })
	input.FieldFunc("description", func(target *CreateProjectTaskInput, source *string) {
		if source != nil {
			target.Description = *source
		}
	})
	input.FieldFunc("dueAt", func(target *CreateProjectTaskInput, source *time.Time) { target.DueAt = source })
}

func RegisterInputs(sb *schemabuilder.Schema) {
	RegisterCreateUserAccountInput(sb)
	RegisterUpdateUserProfileInput(sb)
	RegisterCreateProjectInput(sb)
	RegisterCreateProjectTaskInput(sb)
}

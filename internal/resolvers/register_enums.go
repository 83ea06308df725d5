package resolvers

import (
	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/schemabuilder"
)

func RegisterEnums(sb *schemabuilder.Schema) {
	sb.Enum(models.RoleStudent, map[string]interface{}{
		"ADMIN":            models.RoleAdmin,
		"MASTER_TRADESMAN": models.RoleMasterTradesman,
		"APPRENTICE":       models.RoleApprentice,
		"STUDENT":          models.RoleStudent,
	}, "What a user account does in the guild.")

	sb.Enum(models.ProviderGoogle, map[string]interface{}{
		"GOOGLE":   models.ProviderGoogle,
		"FACEBOOK": models.ProviderFacebook,
		"LINKEDIN": models.ProviderLinkedIn,
	}, "Identity provider of an external account.")

	sb.Enum(models.ProjectDraft, map[string]interface{}{
		"DRAFT":       models.ProjectDraft,
		"OPEN":        models.ProjectOpen,
		"IN_PROGRESS": models.ProjectInProgress,
		"COMPLETED":   models.ProjectCompleted,
		"CANCELLED":   models.ProjectCancelled,
	}, "Lifecycle of a project. COMPLETED and CANCELLED are final.")

	sb.Enum(models.TaskTodo, map[string]interface{}{
		"TODO":        models.TaskTodo,
		"IN_PROGRESS": models.TaskInProgress,
		"DONE":        models.TaskDone,
	})

	sb.Enum(models.ApprenticeTaskAssigned, map[string]interface{}{
		"ASSIGNED":  models.ApprenticeTaskAssigned,
		"SUBMITTED": models.ApprenticeTaskSubmitted,
		"APPROVED":  models.ApprenticeTaskApproved,
		"REJECTED":  models.ApprenticeTaskRejected,
	}, "Review state of an apprentice's work on a task.")
}

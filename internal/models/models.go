// Package models holds the documents persisted by the store and resolved by
// the GraphQL types.
package models

import "time"

type UserRole string

const (
	RoleAdmin           UserRole = "ADMIN"
	RoleMasterTradesman UserRole = "MASTER_TRADESMAN"
	RoleApprentice      UserRole = "APPRENTICE"
	RoleStudent         UserRole = "STUDENT"
)

type AccountProvider string

const (
	ProviderGoogle   AccountProvider = "GOOGLE"
	ProviderFacebook AccountProvider = "FACEBOOK"
	ProviderLinkedIn AccountProvider = "LINKEDIN"
)

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "DRAFT"
	ProjectOpen       ProjectStatus = "OPEN"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

type ApprenticeTaskStatus string

const (
	ApprenticeTaskAssigned  ApprenticeTaskStatus = "ASSIGNED"
	ApprenticeTaskSubmitted ApprenticeTaskStatus = "SUBMITTED"
	ApprenticeTaskApproved  ApprenticeTaskStatus = "APPROVED"
	ApprenticeTaskRejected  ApprenticeTaskStatus = "REJECTED"
)

type UserAccount struct {
	ID          string    `docstore:"id"`
	Email       string    `docstore:"email"`
	DisplayName string    `docstore:"displayName"`
	Role        UserRole  `docstore:"role"`
	CreatedAt   time.Time `docstore:"createdAt"`
}

// ExternalAccount links a user account to an identity provider login.
type ExternalAccount struct {
	ID            string          `docstore:"id"`
	UserAccountID string          `docstore:"userAccountId"`
	Provider      AccountProvider `docstore:"provider"`
	ExternalID    string          `docstore:"externalId"`
	LinkedAt      time.Time       `docstore:"linkedAt"`
}

// UserProfile shares its ID with the owning user account.
type UserProfile struct {
	ID            string    `docstore:"id"`
	UserAccountID string    `docstore:"userAccountId"`
	FirstName     string    `docstore:"firstName"`
	LastName      string    `docstore:"lastName"`
	Bio           string    `docstore:"bio"`
	Location      string    `docstore:"location"`
	UpdatedAt     time.Time `docstore:"updatedAt"`
}

type Project struct {
	ID          string        `docstore:"id"`
	OwnerID     string        `docstore:"ownerId"`
	Title       string        `docstore:"title"`
	Description string        `docstore:"description"`
	Status      ProjectStatus `docstore:"status"`
	CreatedAt   time.Time     `docstore:"createdAt"`
	StartsAt    *time.Time    `docstore:"startsAt"`
	EndsAt      *time.Time    `docstore:"endsAt"`
}

type ProjectTrade struct {
	ID          string    `docstore:"id"`
	ProjectID   string    `docstore:"projectId"`
	Name        string    `docstore:"name"`
	Description string    `docstore:"description"`
	CreatedAt   time.Time `docstore:"createdAt"`
}

type ProjectComment struct {
	ID        string    `docstore:"id"`
	ProjectID string    `docstore:"projectId"`
	AuthorID  string    `docstore:"authorId"`
	Body      string    `docstore:"body"`
	CreatedAt time.Time `docstore:"createdAt"`
}

type ProjectTask struct {
	ID          string     `docstore:"id"`
	ProjectID   string     `docstore:"projectId"`
	Title       string     `docstore:"title"`
	Description string     `docstore:"description"`
	Status      TaskStatus `docstore:"status"`
	DueAt       *time.Time `docstore:"dueAt"`
	CreatedAt   time.Time  `docstore:"createdAt"`
}

// ProjectApprenticeTask assigns a project task to an apprentice.
type ProjectApprenticeTask struct {
	ID            string               `docstore:"id"`
	ProjectID     string               `docstore:"projectId"`
	ProjectTaskID string               `docstore:"projectTaskId"`
	ApprenticeID  string               `docstore:"apprenticeId"`
	Status        ApprenticeTaskStatus `docstore:"status"`
	AssignedAt    time.Time            `docstore:"assignedAt"`
	UpdatedAt     time.Time            `docstore:"updatedAt"`
}

type ProjectStudent struct {
	ID            string    `docstore:"id"`
	ProjectID     string    `docstore:"projectId"`
	UserAccountID string    `docstore:"userAccountId"`
	EnrolledAt    time.Time `docstore:"enrolledAt"`
}

// ProjectMasterTradesman attaches a supervising tradesman to a project,
// optionally for one of the project's trades.
type ProjectMasterTradesman struct {
	ID             string    `docstore:"id"`
	ProjectID      string    `docstore:"projectId"`
	UserAccountID  string    `docstore:"userAccountId"`
	ProjectTradeID string    `docstore:"projectTradeId"`
	JoinedAt       time.Time `docstore:"joinedAt"`
}

package entities

import (
	"time"

	"gorm.io/gorm"
)

type AccountProvider string

const (
	ProviderEmail  AccountProvider = "email"
	ProviderGoogle AccountProvider = "google"
)

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:255" json:"name"`
	Email              string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash       string         `gorm:"size:255" json:"-"`
	ProfilePicture     string         `gorm:"size:2048" json:"profile_picture,omitempty"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`
	CurrentWorkspaceID *uint          `gorm:"index" json:"current_workspace_id,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Account links a user to an authentication provider. A password user has
// an "email" account; a federated user has a "google" account keyed by the
// provider's subject identifier.
type Account struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"index" json:"user_id"`
	Provider     AccountProvider `gorm:"size:32;index:idx_provider_subject,unique" json:"provider"`
	ProviderID   string          `gorm:"size:255;index:idx_provider_subject,unique" json:"-"`
	RefreshToken string          `gorm:"size:512" json:"-"`
	TokenExpiry  *time.Time      `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Workspace struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Description string         `gorm:"size:1024" json:"description,omitempty"`
	OwnerID     uint           `gorm:"index" json:"owner_id"`
	InviteCode  string         `gorm:"uniqueIndex;size:36" json:"invite_code"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Member struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index:idx_member_user_ws,unique" json:"user_id"`
	WorkspaceID uint       `gorm:"index:idx_member_user_ws,unique" json:"workspace_id"`
	Role        MemberRole `gorm:"size:32" json:"role"`
	User        User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt    time.Time  `json:"joined_at"`
}

type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Emoji       string         `gorm:"size:16" json:"emoji,omitempty"`
	Description string         `gorm:"size:1024" json:"description,omitempty"`
	WorkspaceID uint           `gorm:"index" json:"workspace_id"`
	CreatedByID uint           `json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TaskCode     string         `gorm:"uniqueIndex;size:16" json:"task_code"`
	Title        string         `gorm:"size:512" json:"title"`
	Description  string         `gorm:"size:2048" json:"description,omitempty"`
	ProjectID    uint           `gorm:"index" json:"project_id"`
	WorkspaceID  uint           `gorm:"index" json:"workspace_id"`
	Status       TaskStatus     `gorm:"size:32;default:todo" json:"status"`
	Priority     TaskPriority   `gorm:"size:32;default:medium" json:"priority"`
	AssignedToID *uint          `gorm:"index" json:"assigned_to_id,omitempty"`
	CreatedByID  uint           `json:"created_by_id"`
	DueDate      *time.Time     `json:"due_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

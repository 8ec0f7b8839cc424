// Package workspaces provides database operations for workspaces and their
// memberships.
package workspaces

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/entities"
)

// Repository handles workspace and membership database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new workspaces repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a workspace owned by the given user and adds the owner
// membership in the same transaction.
func (r *Repository) Create(name, description string, ownerID uint) (*entities.Workspace, error) {
	ws := &entities.Workspace{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		InviteCode:  uuid.NewString(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ws).Error; err != nil {
			return err
		}
		member := &entities.Member{
			UserID:      ownerID,
			WorkspaceID: ws.ID,
			Role:        entities.MemberRoleOwner,
			JoinedAt:    time.Now(),
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// GetByID retrieves a workspace by ID.
func (r *Repository) GetByID(id uint) (*entities.Workspace, error) {
	var ws entities.Workspace
	err := r.db.First(&ws, id).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// GetAllForUser returns every workspace the user is a member of.
func (r *Repository) GetAllForUser(userID uint) ([]entities.Workspace, error) {
	var wss []entities.Workspace
	err := r.db.
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Find(&wss).Error
	return wss, err
}

// GetMembers returns the memberships of a workspace with users preloaded.
func (r *Repository) GetMembers(workspaceID uint) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Preload("User").Where("workspace_id = ?", workspaceID).Find(&members).Error
	return members, err
}

// IsMember reports whether the user belongs to the workspace.
func (r *Repository) IsMember(userID, workspaceID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Member{}).
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		Count(&count).Error
	return count > 0, err
}

// AddMember adds a user to a workspace with the given role.
func (r *Repository) AddMember(userID, workspaceID uint, role entities.MemberRole) (*entities.Member, error) {
	member := &entities.Member{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// GetByInviteCode retrieves a workspace by its invite code.
func (r *Repository) GetByInviteCode(code string) (*entities.Workspace, error) {
	var ws entities.Workspace
	err := r.db.Where("invite_code = ?", code).First(&ws).Error
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

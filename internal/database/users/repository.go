// Package users provides database operations for user records.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByEmail("a@b.com")
package users

import (
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail retrieves a user by email. The match is case-insensitive.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetCurrentWorkspace updates the user's current workspace association.
func (r *Repository) SetCurrentWorkspace(userID, workspaceID uint) error {
	return r.db.Model(&entities.User{}).Where("id = ?", userID).
		Update("current_workspace_id", workspaceID).Error
}

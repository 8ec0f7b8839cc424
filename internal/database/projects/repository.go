// Package projects provides database operations for projects.
package projects

import (
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/entities"
)

// Repository handles project database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new projects repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a project inside a workspace.
func (r *Repository) Create(name, emoji, description string, workspaceID, createdByID uint) (*entities.Project, error) {
	project := &entities.Project{
		Name:        name,
		Emoji:       emoji,
		Description: description,
		WorkspaceID: workspaceID,
		CreatedByID: createdByID,
	}
	if err := r.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID retrieves a project by ID.
func (r *Repository) GetByID(id uint) (*entities.Project, error) {
	var project entities.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetAllInWorkspace returns every project of a workspace.
func (r *Repository) GetAllInWorkspace(workspaceID uint) ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Package tasks provides database operations for tasks.
package tasks

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/entities"
)

// Repository handles task database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tasks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a task inside a project. A short human-readable task code
// is generated on creation.
func (r *Repository) Create(task *entities.Task) (*entities.Task, error) {
	task.TaskCode = generateTaskCode()
	if task.Status == "" {
		task.Status = entities.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = entities.TaskPriorityMedium
	}
	if err := r.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID retrieves a task by ID.
func (r *Repository) GetByID(id uint) (*entities.Task, error) {
	var task entities.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetAllInWorkspace returns every task of a workspace.
func (r *Repository) GetAllInWorkspace(workspaceID uint) ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// generateTaskCode returns codes like "task-3f8a2c". Uniqueness is enforced
// by the database index; collisions on 3 bytes of a UUID are rare enough
// that a retry at the caller is acceptable.
func generateTaskCode() string {
	id := uuid.New()
	return fmt.Sprintf("task-%x", id[:3])
}

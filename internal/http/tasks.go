package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database/tasks"
	"github.com/teamhubb/server/internal/database/workspaces"
	"github.com/teamhubb/server/internal/entities"
)

// TasksController handles the protected task endpoints.
type TasksController struct {
	tasks      *tasks.Repository
	workspaces *workspaces.Repository
}

// NewTasksController creates a new TasksController.
func NewTasksController(taskRepo *tasks.Repository, workspaceRepo *workspaces.Repository) *TasksController {
	return &TasksController{tasks: taskRepo, workspaces: workspaceRepo}
}

// InWorkspace lists the tasks of a workspace the caller belongs to.
func (tc *TasksController) InWorkspace(c *gin.Context) {
	workspaceID, ok := tc.requireMembership(c)
	if !ok {
		return
	}

	all, err := tc.tasks.GetAllInWorkspace(workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks fetched successfully",
		"tasks":   all,
	})
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uint      `json:"assigned_to_id"`
	DueDate     *time.Time `json:"due_date"`
}

// Create adds a task to a workspace the caller belongs to.
func (tc *TasksController) Create(c *gin.Context) {
	workspaceID, ok := tc.requireMembership(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request payload",
			"errors":  err.Error(),
		})
		return
	}

	task := &entities.Task{
		Title:        req.Title,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		WorkspaceID:  workspaceID,
		Status:       entities.TaskStatus(req.Status),
		Priority:     entities.TaskPriority(req.Priority),
		AssignedToID: req.AssignedTo,
		CreatedByID:  auth.CurrentUserID(c),
		DueDate:      req.DueDate,
	}

	created, err := tc.tasks.Create(task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    created,
	})
}

func (tc *TasksController) requireMembership(c *gin.Context) (uint, bool) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}

	isMember, err := tc.workspaces.IsMember(auth.CurrentUserID(c), workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch workspace"})
		return 0, false
	}
	if !isMember {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workspace not found"})
		return 0, false
	}
	return workspaceID, true
}

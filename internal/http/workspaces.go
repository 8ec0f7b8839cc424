package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database/workspaces"
)

// WorkspacesController handles the protected workspace endpoints.
type WorkspacesController struct {
	workspaces *workspaces.Repository
}

// NewWorkspacesController creates a new WorkspacesController.
func NewWorkspacesController(repo *workspaces.Repository) *WorkspacesController {
	return &WorkspacesController{workspaces: repo}
}

// All returns the workspaces the authenticated user is a member of.
func (wc *WorkspacesController) All(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	wss, err := wc.workspaces.GetAllForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch workspaces"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Workspaces fetched successfully",
		"workspaces": wss,
	})
}

// ByID returns a single workspace. Non-members get a 404 rather than a
// 403, so workspace IDs are not probeable.
func (wc *WorkspacesController) ByID(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := auth.CurrentUserID(c)

	isMember, err := wc.workspaces.IsMember(userID, workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch workspace"})
		return
	}
	if !isMember {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workspace not found"})
		return
	}

	ws, err := wc.workspaces.GetByID(workspaceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workspace not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Workspace fetched successfully",
		"workspace": ws,
	})
}

// parseIDParam parses a numeric path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

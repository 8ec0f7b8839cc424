package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database/projects"
	"github.com/teamhubb/server/internal/database/workspaces"
)

// ProjectsController handles the protected project endpoints.
type ProjectsController struct {
	projects   *projects.Repository
	workspaces *workspaces.Repository
}

// NewProjectsController creates a new ProjectsController.
func NewProjectsController(projectRepo *projects.Repository, workspaceRepo *workspaces.Repository) *ProjectsController {
	return &ProjectsController{projects: projectRepo, workspaces: workspaceRepo}
}

// InWorkspace lists the projects of a workspace the caller belongs to.
func (pc *ProjectsController) InWorkspace(c *gin.Context) {
	workspaceID, ok := pc.requireMembership(c)
	if !ok {
		return
	}

	all, err := pc.projects.GetAllInWorkspace(workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Projects fetched successfully",
		"projects": all,
	})
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// Create adds a project to a workspace the caller belongs to.
func (pc *ProjectsController) Create(c *gin.Context) {
	workspaceID, ok := pc.requireMembership(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request payload",
			"errors":  err.Error(),
		})
		return
	}

	project, err := pc.projects.Create(req.Name, req.Emoji, req.Description, workspaceID, auth.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

// requireMembership parses the workspace ID parameter and verifies the
// caller is a member. It writes the error response itself.
func (pc *ProjectsController) requireMembership(c *gin.Context) (uint, bool) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}

	isMember, err := pc.workspaces.IsMember(auth.CurrentUserID(c), workspaceID)
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

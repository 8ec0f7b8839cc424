package http

import (
	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database"
	"github.com/teamhubb/server/internal/database/projects"
	"github.com/teamhubb/server/internal/database/tasks"
	"github.com/teamhubb/server/internal/database/users"
	"github.com/teamhubb/server/internal/database/workspaces"
)

// RouterConfig receives all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database       *database.Database
	AuthController *auth.Controller
	Gate           *auth.Gate
	SessionManager *auth.SessionManager // nil in token mode
	BasePath       string
	Production     bool
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.Production {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Session middleware only exists in cookie mode; the token backend is
	// stateless and reads the Authorization header directly.
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadAndSave())
	}

	base := router.Group(cfg.BasePath)

	health := NewHealthController(cfg.Database, cfg.Version)
	base.GET("/health", health.Status)

	// Public auth routes
	cfg.AuthController.RegisterRoutes(base.Group("/auth"))

	// Everything below the gate requires an authenticated identity.
	db := cfg.Database.DB
	userRepo := users.NewRepository(db)
	workspaceRepo := workspaces.NewRepository(db)
	projectRepo := projects.NewRepository(db)
	taskRepo := tasks.NewRepository(db)

	usersController := NewUsersController(userRepo)
	workspacesController := NewWorkspacesController(workspaceRepo)
	membersController := NewMembersController(workspaceRepo)
	projectsController := NewProjectsController(projectRepo, workspaceRepo)
	tasksController := NewTasksController(taskRepo, workspaceRepo)

	requireAuth := cfg.Gate.RequireAuth()

	user := base.Group("/user", requireAuth)
	user.GET("/current", usersController.Current)

	workspace := base.Group("/workspace", requireAuth)
	workspace.GET("/all", workspacesController.All)
	workspace.GET("/:id", workspacesController.ByID)

	member := base.Group("/member", requireAuth)
	member.GET("/workspace/:id", membersController.InWorkspace)
	member.POST("/workspace/join/:inviteCode", membersController.Join)

	project := base.Group("/project", requireAuth)
	project.GET("/workspace/:id", projectsController.InWorkspace)
	project.POST("/workspace/:id", projectsController.Create)

	task := base.Group("/task", requireAuth)
	task.GET("/workspace/:id", tasksController.InWorkspace)
	task.POST("/workspace/:id", tasksController.Create)

	return router
}

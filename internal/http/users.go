package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database/users"
)

// UsersController handles the protected user endpoints.
type UsersController struct {
	users *users.Repository
}

// NewUsersController creates a new UsersController.
func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{users: repo}
}

// Current returns the authenticated user's profile. The gate guarantees an
// identity is attached; the lookup can still fail when the subject no
// longer resolves to a user.
func (uc *UsersController) Current(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	user, err := uc.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User fetched successfully",
		"user":    user,
	})
}

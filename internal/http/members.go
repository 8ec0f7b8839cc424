package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/auth"
	"github.com/teamhubb/server/internal/database/workspaces"
	"github.com/teamhubb/server/internal/entities"
)

// MembersController handles the protected membership endpoints.
type MembersController struct {
	workspaces *workspaces.Repository
}

// NewMembersController creates a new MembersController.
func NewMembersController(repo *workspaces.Repository) *MembersController {
	return &MembersController{workspaces: repo}
}

// InWorkspace lists the members of a workspace the caller belongs to.
func (mc *MembersController) InWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := auth.CurrentUserID(c)

	isMember, err := mc.workspaces.IsMember(userID, workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch members"})
		return
	}
	if !isMember {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workspace not found"})
		return
	}

	members, err := mc.workspaces.GetMembers(workspaceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Members fetched successfully",
		"members": members,
	})
}

// Join adds the authenticated user to the workspace behind an invite code.
func (mc *MembersController) Join(c *gin.Context) {
	code := c.Param("inviteCode")
	userID := auth.CurrentUserID(c)

	ws, err := mc.workspaces.GetByInviteCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invalid invite code"})
		return
	}

	already, err := mc.workspaces.IsMember(userID, ws.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join workspace"})
		return
	}
	if already {
		c.JSON(http.StatusConflict, gin.H{"message": "Already a member of this workspace"})
		return
	}

	member, err := mc.workspaces.AddMember(userID, ws.ID, entities.MemberRoleMember)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join workspace"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Joined workspace successfully",
		"workspaceId": ws.ID,
		"role":        member.Role,
	})
}

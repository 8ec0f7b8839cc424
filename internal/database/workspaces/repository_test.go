package workspaces

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/database"
	"github.com/teamhubb/server/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db.DB), db.DB
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Name: "Test User", Email: email, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreate(t *testing.T) {
	repo, db := setupTestRepo(t)
	owner := seedUser(t, db, "owner@example.com")

	ws, err := repo.Create("Engineering", "The eng team", owner.ID)
	require.NoError(t, err)
	assert.NotZero(t, ws.ID)
	assert.Equal(t, owner.ID, ws.OwnerID)
	assert.NotEmpty(t, ws.InviteCode)

	// Owner membership is created alongside the workspace
	members, err := repo.GetMembers(ws.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, entities.MemberRoleOwner, members[0].Role)
}

func TestGetAllForUser(t *testing.T) {
	repo, db := setupTestRepo(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	first, err := repo.Create("First", "", owner.ID)
	require.NoError(t, err)
	_, err = repo.Create("Second", "", owner.ID)
	require.NoError(t, err)
	_, err = repo.Create("Theirs", "", other.ID)
	require.NoError(t, err)

	// Joining a workspace makes it visible too
	_, err = repo.AddMember(other.ID, first.ID, entities.MemberRoleMember)
	require.NoError(t, err)

	mine, err := repo.GetAllForUser(owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := repo.GetAllForUser(other.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)
}

func TestIsMember(t *testing.T) {
	repo, db := setupTestRepo(t)
	owner := seedUser(t, db, "owner@example.com")
	outsider := seedUser(t, db, "outsider@example.com")

	ws, err := repo.Create("Engineering", "", owner.ID)
	require.NoError(t, err)

	ok, err := repo.IsMember(owner.ID, ws.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsMember(outsider.ID, ws.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetMembers_PreloadsUsers(t *testing.T) {
	repo, db := setupTestRepo(t)
	owner := seedUser(t, db, "owner@example.com")

	ws, err := repo.Create("Engineering", "", owner.ID)
	require.NoError(t, err)

	members, err := repo.GetMembers(ws.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "owner@example.com", members[0].User.Email)
}

func TestGetByInviteCode(t *testing.T) {
	repo, db := setupTestRepo(t)
	owner := seedUser(t, db, "owner@example.com")

	ws, err := repo.Create("Engineering", "", owner.ID)
	require.NoError(t, err)

	found, err := repo.GetByInviteCode(ws.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, found.ID)

	_, err = repo.GetByInviteCode("not-a-code")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

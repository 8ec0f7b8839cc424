package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teamhubb/server/internal/config"
	"github.com/teamhubb/server/internal/entities"
)

// newTestService builds a Service on an in-memory database with a cheap
// bcrypt cost so the suite stays fast.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Account{},
		&entities.Workspace{},
		&entities.Member{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewService(db, config.Auth{BcryptCost: 4}), db
}

func TestRegister(t *testing.T) {
	svc, db := newTestService(t)

	user, err := svc.Register("Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Register() returned user without ID")
	}
	if user.CurrentWorkspaceID == nil {
		t.Fatal("Register() did not set a current workspace")
	}

	var account entities.Account
	if err := db.Where("user_id = ?", user.ID).First(&account).Error; err != nil {
		t.Fatalf("expected an account row: %v", err)
	}
	if account.Provider != entities.ProviderEmail {
		t.Errorf("account provider = %q, want %q", account.Provider, entities.ProviderEmail)
	}

	var ws entities.Workspace
	if err := db.First(&ws, *user.CurrentWorkspaceID).Error; err != nil {
		t.Fatalf("expected a workspace row: %v", err)
	}
	if ws.OwnerID != user.ID {
		t.Errorf("workspace owner = %d, want %d", ws.OwnerID, user.ID)
	}
	if ws.InviteCode == "" {
		t.Error("workspace has no invite code")
	}

	var member entities.Member
	if err := db.Where("user_id = ? AND workspace_id = ?", user.ID, ws.ID).First(&member).Error; err != nil {
		t.Fatalf("expected a membership row: %v", err)
	}
	if member.Role != entities.MemberRoleOwner {
		t.Errorf("membership role = %q, want %q", member.Role, entities.MemberRoleOwner)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register("Alice Again", "alice@example.com", "secret456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() duplicate error = %v, want %v", err, ErrEmailTaken)
	}

	// Email uniqueness ignores case
	_, err = svc.Register("Alice Shout", "ALICE@EXAMPLE.COM", "secret456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() case-variant duplicate error = %v, want %v", err, ErrEmailTaken)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct credentials", "alice@example.com", "secret123", nil},
		{"case-insensitive email", "ALICE@example.com", "secret123", nil},
		{"wrong password", "alice@example.com", "wrongpass", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "secret123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if user.Email != "alice@example.com" {
				t.Errorf("Authenticate() email = %q", user.Email)
			}
			if user.LastLoginAt == nil {
				t.Error("Authenticate() did not record last login")
			}
		})
	}
}

func TestAuthenticate_IndistinguishableFailures(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, unknownErr := svc.Authenticate("nobody@example.com", "secret123")
	_, wrongErr := svc.Authenticate("alice@example.com", "wrongpass")

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("failure messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthenticate_UnknownEmailPaysBcryptCost(t *testing.T) {
	svc, _ := newTestService(t)

	// The dummy hash exists and carries the configured cost, so the
	// unknown-email branch runs a real compare.
	cost, err := bcrypt.Cost([]byte(svc.dummyHash))
	if err != nil {
		t.Fatalf("dummy hash is not a valid bcrypt hash: %v", err)
	}
	if cost != 4 {
		t.Errorf("dummy hash cost = %d, want 4", cost)
	}

	if _, err := svc.Register("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Without the dummy compare the unknown-email rejection is orders of
	// magnitude faster than the wrong-password one and enumerates
	// accounts by timing. Average a few runs and allow generous noise.
	const rounds = 10
	var unknownTotal, wrongTotal time.Duration
	for i := 0; i < rounds; i++ {
		start := time.Now()
		_, _ = svc.Authenticate("nobody@example.com", "secret123")
		unknownTotal += time.Since(start)

		start = time.Now()
		_, _ = svc.Authenticate("alice@example.com", "wrongpass")
		wrongTotal += time.Since(start)
	}

	if unknownTotal*4 < wrongTotal {
		t.Errorf("unknown-email rejection (%v total) is far faster than wrong-password rejection (%v total)",
			unknownTotal, wrongTotal)
	}
}

func TestAuthenticate_PersistsLastLogin(t *testing.T) {
	svc, db := newTestService(t)

	if _, err := svc.Register("Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.Authenticate("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.LastLoginAt == nil {
		t.Fatal("Authenticate() did not set last login on the returned user")
	}

	var stored entities.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("last login was not written to the store")
	}
}

func TestLoginWithGoogle_NewUser(t *testing.T) {
	svc, db := newTestService(t)

	profile := &GoogleProfile{
		Subject: "google-sub-1",
		Email:   "bob@example.com",
		Name:    "Bob",
		Picture: "https://example.com/bob.png",
	}

	user, err := svc.LoginWithGoogle(profile)
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	if user.CurrentWorkspaceID == nil {
		t.Fatal("LoginWithGoogle() did not create a personal workspace")
	}
	if user.Email != "bob@example.com" {
		t.Errorf("user email = %q", user.Email)
	}

	// Second login with the same subject resolves to the same user
	again, err := svc.LoginWithGoogle(profile)
	if err != nil {
		t.Fatalf("LoginWithGoogle() second call error = %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("second login user ID = %d, want %d", again.ID, user.ID)
	}

	var userCount int64
	db.Model(&entities.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("user count = %d, want 1", userCount)
	}
}

func TestLoginWithGoogle_LinksExistingEmail(t *testing.T) {
	svc, db := newTestService(t)

	registered, err := svc.Register("Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.LoginWithGoogle(&GoogleProfile{
		Subject: "google-sub-2",
		Email:   "alice@example.com",
		Name:    "Alice",
	})
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("linked user ID = %d, want %d", user.ID, registered.ID)
	}

	var accounts int64
	db.Model(&entities.Account{}).Where("user_id = ?", registered.ID).Count(&accounts)
	if accounts != 2 {
		t.Errorf("account count = %d, want 2 (email + google)", accounts)
	}

	// Linking must not spawn a second workspace
	var workspaces int64
	db.Model(&entities.Workspace{}).Where("owner_id = ?", registered.ID).Count(&workspaces)
	if workspaces != 1 {
		t.Errorf("workspace count = %d, want 1", workspaces)
	}
}

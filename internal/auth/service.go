package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teamhubb/server/internal/config"
	"github.com/teamhubb/server/internal/entities"
)

// defaultWorkspaceName is the personal workspace created on signup. The
// OAuth callback relies on every completed signup having a current
// workspace to redirect into.
const defaultWorkspaceName = "My Workspace"

// Service handles credential verification and the login strategies.
type Service struct {
	db        *gorm.DB
	cfg       config.Auth
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	// Compared against on unknown-email logins so that both rejection
	// paths pay the same bcrypt cost and the lookup result is not
	// observable through response timing.
	dummyHash, err := HashPassword("no-such-credential", cfg.BcryptCost)
	if err != nil {
		dummyHash, _ = HashPassword("no-such-credential", bcrypt.DefaultCost)
	}
	return &Service{db: db, cfg: cfg, dummyHash: dummyHash}
}

// Register creates a user with password credentials plus their personal
// workspace and owner membership, and points the user's current workspace
// at it. Everything happens in one transaction.
func (s *Service) Register(name, email, password string) (*entities.User, error) {
	passwordHash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *entities.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.User
		err := tx.Where("LOWER(email) = LOWER(?)", email).First(&existing).Error
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		user = &entities.User{
			Name:         name,
			Email:        email,
			PasswordHash: passwordHash,
			IsActive:     true,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		account := &entities.Account{
			UserID:     user.ID,
			Provider:   entities.ProviderEmail,
			ProviderID: email,
		}
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		return s.createPersonalWorkspace(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates an email/password pair and returns the user.
//
// An unknown email and a wrong password both return ErrInvalidCredentials;
// the lookup result is never exposed separately. Store failures are
// wrapped and surface as distinct server errors, never as invalid
// credentials.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a compare against the dummy hash so an unknown email
			// takes as long as a wrong password.
			_ = CheckPassword(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	now := time.Now()
	// Best-effort: a failed timestamp write must not reject a valid login.
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginWithGoogle resolves a provider-attested profile to a local user,
// creating the user, linked account and personal workspace on first login.
// An existing user with the same email gets the Google account linked
// instead of a duplicate user.
func (s *Service) LoginWithGoogle(profile *GoogleProfile) (*entities.User, error) {
	var user *entities.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var account entities.Account
		err := tx.Where("provider = ? AND provider_id = ?", entities.ProviderGoogle, profile.Subject).
			First(&account).Error
		if err == nil {
			var existing entities.User
			if err := tx.First(&existing, account.UserID).Error; err != nil {
				return fmt.Errorf("failed to load user for account: %w", err)
			}
			user = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up account: %w", err)
		}

		// No linked account yet. Link to an existing user by email, or
		// create a fresh user with a personal workspace.
		var existing entities.User
		err = tx.Where("LOWER(email) = LOWER(?)", profile.Email).First(&existing).Error
		switch {
		case err == nil:
			user = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &entities.User{
				Name:           profile.Name,
				Email:          profile.Email,
				ProfilePicture: profile.Picture,
				IsActive:       true,
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			if err := s.createPersonalWorkspace(tx, user); err != nil {
				return err
			}
		default:
			return fmt.Errorf("failed to look up user: %w", err)
		}

		newAccount := &entities.Account{
			UserID:     user.ID,
			Provider:   entities.ProviderGoogle,
			ProviderID: profile.Subject,
		}
		return tx.Create(newAccount).Error
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// createPersonalWorkspace creates the signup workspace, the owner
// membership and sets the user's current workspace, inside the caller's
// transaction.
func (s *Service) createPersonalWorkspace(tx *gorm.DB, user *entities.User) error {
	ws := &entities.Workspace{
		Name:       defaultWorkspaceName,
		OwnerID:    user.ID,
		InviteCode: uuid.NewString(),
	}
	if err := tx.Create(ws).Error; err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	member := &entities.Member{
		UserID:      user.ID,
		WorkspaceID: ws.ID,
		Role:        entities.MemberRoleOwner,
		JoinedAt:    time.Now(),
	}
	if err := tx.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	if err := tx.Model(user).Update("current_workspace_id", ws.ID).Error; err != nil {
		return fmt.Errorf("failed to set current workspace: %w", err)
	}
	user.CurrentWorkspaceID = &ws.ID
	return nil
}

package auth

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/teamhubb/server/internal/config"
	"github.com/teamhubb/server/internal/entities"
)

// Session data keys
const (
	SessionKeyUserID  = "user_id"
	SessionKeyEmail   = "email"
	SessionKeyLoginAt = "login_at"
)

func init() {
	// Register types that will be stored in sessions
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager backed by the given SQL
// database. The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth, production bool) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	configureCookie(sm, cfg, production)

	return &SessionManager{SessionManager: sm}, nil
}

// NewMemorySessionManager creates a session manager backed by the scs
// in-memory store. Intended for tests.
func NewMemorySessionManager(cfg config.Auth, production bool) *SessionManager {
	sm := scs.New()
	configureCookie(sm, cfg, production)
	return &SessionManager{SessionManager: sm}
}

// configureCookie applies the environment-dependent cookie policy.
//
// Production serves the SPA from a different origin, so the session cookie
// must travel cross-site: SameSite=None, which browsers only accept with
// Secure=true. Non-production runs over plain HTTP and uses SameSite=Lax.
func configureCookie(sm *scs.SessionManager, cfg config.Auth, production bool) {
	lifetime := cfg.SessionLifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	if production {
		sm.Cookie.Secure = true
		sm.Cookie.SameSite = http.SameSiteNoneMode
	} else {
		sm.Cookie.Secure = false
		sm.Cookie.SameSite = http.SameSiteLaxMode
	}
}

// CreateSession creates a new session for a user after successful
// authentication. The token is renewed to prevent session fixation; scs
// generates it from crypto/rand.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Store user ID as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(user.ID))
	sm.Put(r.Context(), SessionKeyEmail, user.Email)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session
// token. Destroying an absent session is a no-op.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID retrieves the user ID from the session.
// Returns 0 if not authenticated.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// GetEmail retrieves the user email from the session.
func (sm *SessionManager) GetEmail(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyEmail)
}

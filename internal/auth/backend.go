package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamhubb/server/internal/config"
	"github.com/teamhubb/server/internal/entities"
)

// SessionBackend is the session mechanism a deployment runs. Exactly one
// implementation is active per process, chosen at configuration time and
// injected into the establishment handlers and the gate; request handling
// never branches on the environment.
type SessionBackend interface {
	// Mode reports which session artifact this backend issues.
	Mode() config.SessionMode

	// Establish issues the session artifact for a verified identity.
	// Cookie mode writes a Set-Cookie and returns ""; token mode returns
	// the compact token the client must submit in the Authorization
	// header on subsequent requests.
	Establish(c *gin.Context, user *entities.User) (string, error)

	// Identify extracts and validates the artifact on an incoming request
	// and returns the identity it attests. Missing, malformed, expired or
	// badly signed artifacts yield ErrUnauthenticated.
	Identify(c *gin.Context) (*Identity, error)

	// Clear invalidates the current artifact. Idempotent: clearing a
	// request without a session is harmless.
	Clear(c *gin.Context) error
}

// CookieBackend keeps session state server-side, referenced by a signed
// `session` cookie.
type CookieBackend struct {
	sessions *SessionManager
}

// NewCookieBackend creates the cookie-session backend.
func NewCookieBackend(sessions *SessionManager) *CookieBackend {
	return &CookieBackend{sessions: sessions}
}

func (b *CookieBackend) Mode() config.SessionMode {
	return config.SessionModeCookie
}

func (b *CookieBackend) Establish(c *gin.Context, user *entities.User) (string, error) {
	if err := b.sessions.CreateSession(c.Request, user); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return "", nil
}

func (b *CookieBackend) Identify(c *gin.Context) (*Identity, error) {
	userID := b.sessions.GetUserID(c.Request)
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return &Identity{
		ID:    userID,
		Email: b.sessions.GetEmail(c.Request),
	}, nil
}

func (b *CookieBackend) Clear(c *gin.Context) error {
	return b.sessions.DestroySession(c.Request)
}

// TokenBackend issues stateless signed bearer tokens. Logout cannot
// invalidate an already issued token server-side; clients discard it.
type TokenBackend struct {
	codec *TokenCodec
}

// NewTokenBackend creates the bearer-token backend.
func NewTokenBackend(codec *TokenCodec) *TokenBackend {
	return &TokenBackend{codec: codec}
}

func (b *TokenBackend) Mode() config.SessionMode {
	return config.SessionModeToken
}

func (b *TokenBackend) Establish(c *gin.Context, user *entities.User) (string, error) {
	token, err := b.codec.Encode(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return token, nil
}

func (b *TokenBackend) Identify(c *gin.Context) (*Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, ErrUnauthenticated
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, ErrUnauthenticated
	}

	userID, err := b.codec.Decode(parts[1])
	if err != nil {
		// Decode already reports ErrUnauthenticated, but the gate's
		// contract should not depend on the codec's error wrapping.
		return nil, ErrUnauthenticated
	}
	return &Identity{ID: userID}, nil
}

// Clear is a no-op: tokens are stateless and expire on their own. Server
// side revocation is an explicit non-goal of this design.
func (b *TokenBackend) Clear(c *gin.Context) error {
	return nil
}

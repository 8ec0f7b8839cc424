package auth

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gate authenticates every request on a protected route. It extracts and
// validates the active backend's session artifact, attaches the identity
// to the request context and only then lets the chain continue. Failures
// are terminal: the request is rejected with 401 and never proceeds as
// anonymous.
type Gate struct {
	backend SessionBackend
	logger  *slog.Logger
}

// NewGate creates the authentication gate middleware for the active
// backend. A nil logger disables the observability events.
func NewGate(backend SessionBackend, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gate{backend: backend, logger: logger}
}

// RequireAuth returns the gin middleware enforcing authentication.
func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.backend.Identify(c)
		if err != nil {
			g.logger.Debug("request rejected",
				"mode", string(g.backend.Mode()),
				"path", c.Request.URL.Path,
				"outcome", "unauthenticated")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": MsgUnauthorized,
			})
			return
		}

		c.Set(ContextKeyIdentity, *identity)
		c.Next()
	}
}

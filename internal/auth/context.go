package auth

import "github.com/gin-gonic/gin"

// Identity is the minimal projection of a user attached to a request once
// authentication succeeds. Downstream handlers should rely on ID only; the
// email is present when the active backend carries it (cookie sessions do,
// bearer tokens do not).
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email,omitempty"`
}

// ContextKeyIdentity is the gin context key under which the gate stores
// the authenticated identity.
const ContextKeyIdentity = "auth_identity"

// GetIdentity retrieves the authenticated identity from the gin context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// CurrentUserID returns the authenticated user's ID, or 0 when the request
// did not pass the gate.
func CurrentUserID(c *gin.Context) uint {
	identity, ok := GetIdentity(c)
	if !ok {
		return 0
	}
	return identity.ID
}

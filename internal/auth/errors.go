package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means the request carried no valid session
	// artifact (missing, malformed, expired or badly signed).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrEmailTaken is returned on registration when the email already
	// belongs to an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWorkspaceMissing means a federated login completed at the
	// provider but the user has no current workspace association, so the
	// login must not complete.
	ErrWorkspaceMissing = errors.New("no current workspace for user")
)

// User-facing messages. These are intentionally generic; internal detail
// stays in logs.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUnauthorized       = "Unauthorized. Please log in."
	MsgLoggedIn           = "Logged in successfully"
	MsgLoggedOut          = "Logged out successfully"
	MsgUserCreated        = "User created successfully"
	MsgInternalError      = "Internal server error"
)

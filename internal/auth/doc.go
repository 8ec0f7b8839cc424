// Package auth provides authentication and session establishment for the
// TeamHub API.
//
// It supports two interchangeable session mechanisms, selected once at
// process configuration time:
//   - "cookie": server-side session state referenced by a signed `session`
//     cookie (default)
//   - "token": a signed bearer token carried in the Authorization header
//
// # Configuration
//
// Set SESSION_MODE to select the mechanism:
//
//	SESSION_MODE=cookie  # Default, scs-backed cookie sessions
//	SESSION_MODE=token   # Stateless signed bearer tokens
//
// Additional configuration:
//
//	SESSION_LIFETIME=24h            # Cookie session duration
//	TOKEN_SECRET=<hex-32-bytes>     # Required in token mode
//	TOKEN_EXPIRY=24h                # Bearer token duration
//	BCRYPT_COST=12                  # bcrypt cost factor
//
// # Usage
//
// Wire the backend and gate in the entrypoint:
//
//	backend := auth.NewCookieBackend(sessionManager)
//	gate := auth.NewGate(backend, logger)
//	protected.Use(gate.RequireAuth())
//
// Extract the identity in handlers:
//
//	identity, ok := auth.GetIdentity(c)
package auth

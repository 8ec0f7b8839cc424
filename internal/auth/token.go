package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer identifies tokens minted by this service.
const tokenIssuer = "teamhub"

// TokenCodec encodes and decodes signed bearer tokens carrying a user
// identifier and expiry. Tokens are HS256-signed with a shared secret
// configured at deployment time.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
}

// NewTokenCodec creates a token codec. The secret must be non-empty; the
// expiry defaults to 24 hours when zero.
func NewTokenCodec(secret string, expiry time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), expiry: expiry}, nil
}

// Encode mints a compact signed token with the user ID as subject,
// issued now and expiring after the configured duration.
func (tc *TokenCodec) Encode(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tc.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Decode verifies the signature and expiry of a token and returns the
// subject user ID. Any failure (malformed input, bad signature, expired
// or not-yet-valid token) is reported as ErrUnauthenticated.
func (tc *TokenCodec) Decode(tokenStr string) (uint, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)

	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
	}
	return uint(userID), nil
}

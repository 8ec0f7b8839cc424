package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func requestContext(header string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c
}

func TestTokenBackend_IdentifyFailuresAreUnauthenticated(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	backend := NewTokenBackend(codec)

	expired, err := (&TokenCodec{secret: []byte("test-secret"), expiry: -time.Hour}).Encode(7)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"malformed token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backend.Identify(requestContext(tt.header))
			if !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("Identify() error = %v, want %v", err, ErrUnauthenticated)
			}
		})
	}
}

func TestTokenBackend_IdentifyValidToken(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret", time.Hour)
	backend := NewTokenBackend(codec)

	token, err := codec.Encode(42)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	identity, err := backend.Identify(requestContext("Bearer " + token))
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if identity.ID != 42 {
		t.Errorf("Identify() ID = %d, want 42", identity.ID)
	}
}

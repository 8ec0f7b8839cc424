package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTokenCodec_RequiresSecret(t *testing.T) {
	if _, err := NewTokenCodec("", time.Hour); err == nil {
		t.Error("NewTokenCodec() with empty secret should fail")
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}

	for _, userID := range []uint{1, 42, 9999999} {
		token, err := codec.Encode(userID)
		if err != nil {
			t.Fatalf("Encode(%d) error = %v", userID, err)
		}

		got, err := codec.Decode(token)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got != userID {
			t.Errorf("Decode() = %d, want %d", got, userID)
		}
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	// Negative expiry is normalized to 24h by the constructor, so build
	// the codec directly to mint an already-expired token.
	codec := &TokenCodec{secret: []byte("test-secret"), expiry: -time.Hour}

	token, err := codec.Encode(7)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	_, err = codec.Decode(token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Decode() of expired token error = %v, want %v", err, ErrUnauthenticated)
	}
}

func TestTokenCodec_Tampered(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Encode(7)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Decode(tampered); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Decode() of tampered token error = %v, want %v", err, ErrUnauthenticated)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	mint, _ := NewTokenCodec("secret-a", time.Hour)
	verify, _ := NewTokenCodec("secret-b", time.Hour)

	token, err := mint.Encode(7)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if _, err := verify.Decode(token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Decode() with wrong secret error = %v, want %v", err, ErrUnauthenticated)
	}
}

func TestTokenCodec_Garbage(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(input); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("Decode(%q) error = %v, want %v", input, err, ErrUnauthenticated)
		}
	}
}

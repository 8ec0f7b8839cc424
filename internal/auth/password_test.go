package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == "correct horse battery" {
		t.Fatal("HashPassword() returned plaintext")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73), 4)
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword() error = %v, want %v", err, ErrPasswordTooLong)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := CheckPassword("correct horse battery", hash); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}

	err = CheckPassword("wrong password", hash)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if len(a) != 64 { // 32 bytes hex encoded
		t.Errorf("GenerateSecret() length = %d, want 64", len(a))
	}

	b, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if a == b {
		t.Error("GenerateSecret() produced identical secrets")
	}
}

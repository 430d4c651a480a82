package cryptox

import (
	"bytes"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	a := HashPassword([]byte("secret"), salt)
	b := HashPassword([]byte("secret"), salt)
	if !bytes.Equal(a, b) {
		t.Fatal("same password and salt must give the same hash")
	}
	if len(a) != keySize {
		t.Fatalf("hash length = %d, want %d", len(a), keySize)
	}
}

func TestHashPassword_SaltMatters(t *testing.T) {
	a := HashPassword([]byte("secret"), NewSalt())
	b := HashPassword([]byte("secret"), NewSalt())
	if bytes.Equal(a, b) {
		t.Fatal("different salts must give different hashes")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt := NewSalt()
	hash := HashPassword([]byte("hunter2"), salt)

	if !VerifyPassword(hash, salt, []byte("hunter2")) {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword(hash, salt, []byte("hunter3")) {
		t.Fatal("expected wrong password to fail")
	}
}

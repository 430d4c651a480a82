// Package cryptox hashes and verifies account passwords with argon2id.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

const (
	SaltSize = 16
	keySize  = 32
)

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the argon2id key of password with salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// VerifyPassword recomputes the hash of candidate and compares it with hash
// in constant time.
func VerifyPassword(hash, salt, candidate []byte) bool {
	return subtle.ConstantTimeCompare(hash, HashPassword(candidate, salt)) == 1
}

// Package models defines server-side rows that never leave the server.
// Task and profile rows are shared with the client and live in
// internal/models.
package models

import "time"

// User is an account row. PasswordHash is argon2id over the password with Salt.
type User struct {
	ID           string
	Email        string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    time.Time
}

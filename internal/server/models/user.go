// Package models holds the persistent entities of the service.
package models

import "time"

// User is a registered account. Email is globally unique (exact match,
// case-sensitive) and PasswordHash only ever holds a bcrypt hash, never the
// plaintext. Users are created on registration and deleted together with
// their todos; no other mutation exists.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

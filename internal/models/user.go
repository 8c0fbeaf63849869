// Package models contains the persisted data types shared by repositories
// and services.
package models

import "time"

// User is an account record. PasswordHash is a PHC-encoded Argon2id hash.
// SecurityAnswer is stored encrypted (lower-cased before encryption, so
// recovery comparison is case-insensitive).
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	SecurityQuestion string
	SecurityAnswer   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

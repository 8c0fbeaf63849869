package models

import "time"

// Session is a server-side session row. Rows are never deleted; revocation
// flips IsActive off so the audit trail survives.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	IsActive  bool
	CreatedAt time.Time
}

// Valid reports whether the session is usable at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}

package models

import "time"

// ActivityEntry is a write-only audit row for security-relevant events.
type ActivityEntry struct {
	UserID    string
	Action    string
	Details   string // JSON-encoded context
	IP        string
	UserAgent string
	CreatedAt time.Time
}

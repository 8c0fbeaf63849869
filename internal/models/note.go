package models

import "time"

// Note is a single note row. Content holds ciphertext at rest; services
// decrypt it transiently when returning notes to callers. IDs are assigned by
// the store and are never reassigned, even after deletes.
type Note struct {
	ID        int64
	UserID    string
	Title     string
	Content   string
	Tags      string // comma-separated label set, unordered
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch describes a partial note update. Nil fields are left untouched,
// so an explicit empty string is a legal new value.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *string
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

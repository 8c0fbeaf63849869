// Package repomanager wires the concrete repository set for a configured
// backend. Services depend on this interface and stay backend-agnostic: the
// same contract holds over PostgreSQL and over the flat-file store.
package repomanager

import (
	"github.com/shindearyan179/notesnap/internal/repositories/activity"
	"github.com/shindearyan179/notesnap/internal/repositories/notes"
	"github.com/shindearyan179/notesnap/internal/repositories/ratelimits"
	"github.com/shindearyan179/notesnap/internal/repositories/sessions"
	"github.com/shindearyan179/notesnap/internal/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Notes() notes.Repository
	Sessions() sessions.Repository
	RateLimits() ratelimits.Repository
	Activity() activity.Repository
	Close() error
}

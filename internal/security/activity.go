package security

import (
	"context"
	"encoding/json"

	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/models"
	activityrepo "github.com/shindearyan179/notesnap/internal/repositories/activity"
)

// ActivityLog records security-relevant events. Writes are best effort: an
// audit failure is logged but never turns a successful operation into a
// failed one.
type ActivityLog struct {
	repo   activityrepo.Repository
	logger logging.Logger
}

// NewActivityLog constructs an activity log over the given store.
func NewActivityLog(repo activityrepo.Repository, logger logging.Logger) *ActivityLog {
	return &ActivityLog{repo: repo, logger: logger}
}

// Record appends one audit row. details is JSON-encoded; userID may be empty
// for unauthenticated events such as failed logins.
func (a *ActivityLog) Record(ctx context.Context, userID, action string, details map[string]string, ip, userAgent string) {
	encoded, err := json.Marshal(details)
	if err != nil {
		encoded = []byte("{}")
	}

	entry := &models.ActivityEntry{
		UserID:    userID,
		Action:    action,
		Details:   string(encoded),
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := a.repo.Append(ctx, entry); err != nil {
		a.logger.Error(ctx, "activity log append failed", "action", action, "error", err)
	}
}

// Package sessions implements the server-side session lifecycle: creation on
// login, validation with sliding extension near expiry, and revocation on
// logout.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/models"
	sessionrepo "github.com/shindearyan179/notesnap/internal/repositories/sessions"
)

const tokenBytes = 32

// Manager drives the session state machine: Created -> Active -> {Expired, Revoked}.
type Manager struct {
	repo           sessionrepo.Repository
	logger         logging.Logger
	validity       time.Duration
	renewalWindow  time.Duration
	storageTimeout time.Duration
	now            func() time.Time
}

// NewManager constructs a session manager. validity is the session lifetime;
// renewalWindow is how close to expiry a session must be before validation
// extends it. storageTimeout bounds each repository call.
func NewManager(repo sessionrepo.Repository, logger logging.Logger, validity, renewalWindow, storageTimeout time.Duration) *Manager {
	return &Manager{
		repo:           repo,
		logger:         logger,
		validity:       validity,
		renewalWindow:  renewalWindow,
		storageTimeout: storageTimeout,
		now:            time.Now,
	}
}

func (m *Manager) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.storageTimeout)
}

// Create mints a high-entropy token and inserts an active session for userID.
func (m *Manager) Create(ctx context.Context, userID string) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", common.ErrorInternal
	}

	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: m.now().Add(m.validity),
		IsActive:  true,
		CreatedAt: m.now(),
	}

	sctx, cancel := m.storageCtx(ctx)
	defer cancel()

	if err := m.repo.Create(sctx, session); err != nil {
		m.logger.Error(ctx, "session create failed", "user_id", userID, "error", err)
		return "", common.ErrorStorageUnavailable
	}

	return token, nil
}

// Validate reports whether (userID, token) identifies a live session. When the
// remaining lifetime has dropped below the renewal window the expiry slides
// forward by the full validity. Extension happens only near the boundary, not
// on every check, so validation stays read-mostly.
func (m *Manager) Validate(ctx context.Context, userID, token string) (bool, error) {
	sctx, cancel := m.storageCtx(ctx)
	defer cancel()

	session, err := m.repo.Find(sctx, userID, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		m.logger.Error(ctx, "session lookup failed", "user_id", userID, "error", err)
		return false, common.ErrorStorageUnavailable
	}

	now := m.now()
	if !session.Valid(now) {
		return false, nil
	}

	if session.ExpiresAt.Sub(now) < m.renewalWindow {
		// extension may race a concurrent revoke; last writer wins
		if err := m.repo.Extend(sctx, userID, token, now.Add(m.validity)); err != nil {
			m.logger.Warn(ctx, "session extension failed", "user_id", userID, "error", err)
		}
	}

	return true, nil
}

// Revoke marks the session inactive. Idempotent; the row stays behind as an
// audit record.
func (m *Manager) Revoke(ctx context.Context, userID, token string) error {
	sctx, cancel := m.storageCtx(ctx)
	defer cancel()

	if err := m.repo.Revoke(sctx, userID, token); err != nil {
		m.logger.Error(ctx, "session revoke failed", "user_id", userID, "error", err)
		return common.ErrorStorageUnavailable
	}
	return nil
}

// RevokeAll marks every session of the user inactive. Used when the account
// is deleted.
func (m *Manager) RevokeAll(ctx context.Context, userID string) error {
	sctx, cancel := m.storageCtx(ctx)
	defer cancel()

	if err := m.repo.RevokeAll(sctx, userID); err != nil {
		m.logger.Error(ctx, "session revoke-all failed", "user_id", userID, "error", err)
		return common.ErrorStorageUnavailable
	}
	return nil
}

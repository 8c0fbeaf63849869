// Package auth implements registration, login, password recovery via
// security question, and account deletion. It composes the crypto service,
// the account store, the session manager and the rate limiter, and is the
// boundary past which no storage or crypto error travels raw: callers see
// sentinel errors and booleans only.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/cryptox"
	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/models"
	userrepo "github.com/shindearyan179/notesnap/internal/repositories/users"
	"github.com/shindearyan179/notesnap/internal/security"
	"github.com/shindearyan179/notesnap/internal/sessions"
)

// Origin identifies the remote caller for rate limiting and auditing.
type Origin struct {
	IP        string
	UserAgent string
}

// UserInfo is the public view of an account: never the hash, never the
// answer.
type UserInfo struct {
	ID               string
	Username         string
	SecurityQuestion string
}

// UserRecord extends UserInfo with the encrypted security answer for the
// recovery flow. The plaintext answer is never exposed.
type UserRecord struct {
	UserInfo
	EncryptedAnswer string
}

// Service is the auth facade.
type Service struct {
	users          userrepo.Repository
	sessions       *sessions.Manager
	limiter        *security.Limiter
	audit          *security.ActivityLog
	logger         logging.Logger
	validate       *validator.Validate
	secret         string
	storageTimeout time.Duration
}

// NewService wires the auth service. secret is the configured encryption
// secret that per-user keys derive from.
func NewService(
	users userrepo.Repository,
	sessionMgr *sessions.Manager,
	limiter *security.Limiter,
	audit *security.ActivityLog,
	logger logging.Logger,
	secret string,
	storageTimeout time.Duration,
) *Service {
	return &Service{
		users:          users,
		sessions:       sessionMgr,
		limiter:        limiter,
		audit:          audit,
		logger:         logger,
		validate:       newValidator(),
		secret:         secret,
		storageTimeout: storageTimeout,
	}
}

func (s *Service) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storageTimeout)
}

// Register creates a new account. The password is hashed, the security
// answer is lower-cased and encrypted under the user's derived key, and the
// returned view contains neither.
func (s *Service) Register(ctx context.Context, input RegisterInput, origin Origin) (*UserInfo, error) {
	if err := s.limiter.Allow(ctx, origin.IP, "register"); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, common.ErrorValidation
	}

	hash, err := cryptox.HashPassword(input.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	// the id is minted here so the answer can be encrypted under the
	// user's derived key before the row exists
	userID := uuid.NewString()

	encryptedAnswer, err := cryptox.Encrypt(strings.ToLower(input.SecurityAnswer), s.userKey(userID))
	if err != nil {
		s.logger.Error(ctx, "security answer encryption failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:               userID,
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     hash,
		SecurityQuestion: input.SecurityQuestion,
		SecurityAnswer:   encryptedAnswer,
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	created, err := s.users.Create(sctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) || errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, err
		}
		s.logger.Error(ctx, "user create failed", "username", input.Username, "error", err)
		return nil, common.ErrorStorageUnavailable
	}

	s.audit.Record(ctx, created.ID, "register", map[string]string{"username": created.Username}, origin.IP, origin.UserAgent)

	return &UserInfo{ID: created.ID, Username: created.Username, SecurityQuestion: created.SecurityQuestion}, nil
}

// dummyVerify burns roughly the same work as a real verification so a failed
// lookup and a failed password are indistinguishable by timing.
var dummyVerify = sync.OnceValue(func() string {
	hash, err := cryptox.HashPassword("dummy-timing-password")
	if err != nil {
		return ""
	}
	return hash
})

// Login authenticates and mints a session. Unknown username and wrong
// password produce the same ErrorInvalidCredentials; nothing in the response
// reveals which it was.
func (s *Service) Login(ctx context.Context, username, password string, origin Origin) (*UserInfo, string, error) {
	if err := s.limiter.Allow(ctx, origin.IP, "login"); err != nil {
		return nil, "", err
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.users.FindByUsername(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, dummyVerify())
			s.audit.Record(ctx, "", "login_failed", map[string]string{"username": username}, origin.IP, origin.UserAgent)
			return nil, "", common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return nil, "", common.ErrorStorageUnavailable
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		s.audit.Record(ctx, user.ID, "login_failed", map[string]string{"username": username}, origin.IP, origin.UserAgent)
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.audit.Record(ctx, user.ID, "login", map[string]string{"username": username}, origin.IP, origin.UserAgent)

	return &UserInfo{ID: user.ID, Username: user.Username, SecurityQuestion: user.SecurityQuestion}, token, nil
}

// Logout revokes the session. Idempotent.
func (s *Service) Logout(ctx context.Context, userID, token string, origin Origin) error {
	if err := s.sessions.Revoke(ctx, userID, token); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, "logout", nil, origin.IP, origin.UserAgent)
	return nil
}

// ResetPassword overwrites the password when the provided security answer
// matches the stored one (case-insensitively). No session is created. Every
// failure mode except rate limiting collapses to false.
func (s *Service) ResetPassword(ctx context.Context, username, answer, newPassword string, origin Origin) (bool, error) {
	if err := s.limiter.Allow(ctx, origin.IP, "reset_password"); err != nil {
		return false, err
	}

	if !validPassword(newPassword) {
		return false, common.ErrorValidation
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.users.FindByUsername(sctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		}
		return false, nil
	}

	stored, err := cryptox.Decrypt(user.SecurityAnswer, s.userKey(user.ID))
	if err != nil {
		s.logger.Error(ctx, "security answer decryption failed", "user_id", user.ID, "error", err)
		return false, nil
	}

	if stored != strings.ToLower(answer) {
		s.audit.Record(ctx, user.ID, "password_reset_failed", nil, origin.IP, origin.UserAgent)
		return false, nil
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return false, nil
	}
	user.PasswordHash = hash

	if err := s.users.Update(sctx, user); err != nil {
		s.logger.Error(ctx, "password update failed", "user_id", user.ID, "error", err)
		return false, nil
	}

	s.audit.Record(ctx, user.ID, "password_reset", nil, origin.IP, origin.UserAgent)
	return true, nil
}

// UpdateSecurityQuestion overwrites both the question and the (re-encrypted)
// answer together; a user always has exactly one recovery pair.
func (s *Service) UpdateSecurityQuestion(ctx context.Context, username, question, answer string, origin Origin) (bool, error) {
	if question == "" || answer == "" {
		return false, common.ErrorValidation
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.users.FindByUsername(sctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		}
		return false, nil
	}

	encryptedAnswer, err := cryptox.Encrypt(strings.ToLower(answer), s.userKey(user.ID))
	if err != nil {
		s.logger.Error(ctx, "security answer encryption failed", "user_id", user.ID, "error", err)
		return false, nil
	}

	user.SecurityQuestion = question
	user.SecurityAnswer = encryptedAnswer

	if err := s.users.Update(sctx, user); err != nil {
		s.logger.Error(ctx, "security question update failed", "user_id", user.ID, "error", err)
		return false, nil
	}

	s.audit.Record(ctx, user.ID, "security_question_updated", nil, origin.IP, origin.UserAgent)
	return true, nil
}

// DeleteAccount revokes every session and removes the user; notes cascade
// with the account.
func (s *Service) DeleteAccount(ctx context.Context, username string, origin Origin) (bool, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.users.FindByUsername(sctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		}
		return false, nil
	}

	if err := s.sessions.RevokeAll(ctx, user.ID); err != nil {
		return false, nil
	}

	if err := s.users.Delete(sctx, user.ID); err != nil {
		s.logger.Error(ctx, "user delete failed", "user_id", user.ID, "error", err)
		return false, nil
	}

	s.audit.Record(ctx, user.ID, "account_deleted", map[string]string{"username": username}, origin.IP, origin.UserAgent)
	return true, nil
}

// GetUserByUsername returns the public record plus the encrypted answer, or
// nil when the user does not exist.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.users.FindByUsername(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return nil, common.ErrorStorageUnavailable
	}

	return &UserRecord{
		UserInfo: UserInfo{
			ID:               user.ID,
			Username:         user.Username,
			SecurityQuestion: user.SecurityQuestion,
		},
		EncryptedAnswer: user.SecurityAnswer,
	}, nil
}

// ValidateSession reports whether the token still identifies a live session
// for the user.
func (s *Service) ValidateSession(ctx context.Context, userID, token string) (bool, error) {
	return s.sessions.Validate(ctx, userID, token)
}

func (s *Service) userKey(userID string) []byte {
	return cryptox.DeriveUserKey(userID, s.secret)
}

// Package common defines shared constants and sentinel errors used across
// NoteSnap components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorDuplicateUsername = errors.New("username already taken")
	ErrorDuplicateEmail    = errors.New("email already in use")

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorValidation         = errors.New("validation error")

	// Storage/crypto errors surfaced at the service boundary.
	ErrorStorageUnavailable = errors.New("storage unavailable")
	ErrorDecryption         = errors.New("decryption failed")

	// Rate limiting is the one fail-closed path: the request is rejected
	// outright instead of degrading to a soft boolean.
	ErrorRateLimited = errors.New("too many attempts")
)

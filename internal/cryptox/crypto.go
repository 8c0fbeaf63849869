// Package cryptox implements the cryptographic primitives NoteSnap relies on:
// Argon2id password hashing, AES-256-GCM encryption of note content and
// security answers, and per-user key derivation.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/shindearyan179/notesnap/internal/common"
)

// Argon2id parameters: 64 MiB memory, 4 iterations, 3 lanes.
const (
	argonMemory  = 64 * 1024
	argonTime    = 4
	argonThreads = 3
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword derives an Argon2id hash of the password with a fresh random
// salt and returns it in PHC string format:
//
//	$argon2id$v=19$m=65536,t=4,p=3$<b64 salt>$<b64 hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// VerifyPassword reports whether password matches the PHC-encoded Argon2id
// hash. Comparison is constant-time. Malformed hashes verify as false.
func VerifyPassword(password, encoded string) bool {
	salt, hash, time, memory, threads, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, candidate) == 1
}

func decodeHash(encoded string) (salt, hash []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("unsupported argon2 version: %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, err
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, err
	}

	return salt, hash, time, memory, threads, nil
}

// Encrypt encrypts plaintext with AES-256-GCM under the given 32-byte key.
// A fresh random 12-byte nonce is generated per call and prepended to the
// ciphertext before base64 encoding, so two encryptions of the same plaintext
// never produce the same output.
func Encrypt(plaintext string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Malformed input, a wrong key, or tampered
// ciphertext all surface as common.ErrorDecryption; the underlying cause is
// deliberately not exposed.
func Decrypt(encoded string, key []byte) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", common.ErrorDecryption
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", common.ErrorDecryption
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", common.ErrorDecryption
	}

	if len(data) < aesgcm.NonceSize() {
		return "", common.ErrorDecryption
	}

	nonce, ciphertext := data[:aesgcm.NonceSize()], data[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", common.ErrorDecryption
	}

	return string(plaintext), nil
}

// DeriveUserKey derives the 32-byte AES key for a user's data from the user id
// and the configured secret. Each user gets a distinct key, so compromise of
// one key does not expose other users' notes.
func DeriveUserKey(userID, secret string) []byte {
	hash := sha256.Sum256([]byte(userID + secret))
	return hash[:]
}

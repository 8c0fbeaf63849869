package cryptox

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shindearyan179/notesnap/internal/common"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("P@ssw0rd1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	if !VerifyPassword("P@ssw0rd1", hash) {
		t.Errorf("expected correct password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Errorf("expected wrong password to fail")
	}
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	hash1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	hash2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash1 == hash2 {
		t.Errorf("expected different hashes for same password (random salt)")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=4,p=3$not-base64!$x",
		"$bcrypt$v=19$m=65536,t=4,p=3$c2FsdA$aGFzaA",
	} {
		if VerifyPassword("anything", encoded) {
			t.Errorf("expected malformed hash %q to fail verification", encoded)
		}
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := DeriveUserKey("user-1", "secret")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple", "hello world"},
		{"empty", ""},
		{"multiline", "line one\nline two\n\nline four"},
		{"unicode", "заметка 📝"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encrypted, err := Encrypt(tc.plaintext, key)
			if err != nil {
				t.Fatalf("Encrypt error: %v", err)
			}

			decrypted, err := Decrypt(encrypted, key)
			if err != nil {
				t.Fatalf("Decrypt error: %v", err)
			}

			if decrypted != tc.plaintext {
				t.Errorf("round trip mismatch: got %q, want %q", decrypted, tc.plaintext)
			}
		})
	}
}

func TestEncrypt_RandomNonce(t *testing.T) {
	key := DeriveUserKey("user-1", "secret")

	c1, err := Encrypt("same plaintext", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	c2, err := Encrypt("same plaintext", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if c1 == c2 {
		t.Errorf("expected different ciphertexts for same plaintext")
	}

	p1, err := Decrypt(c1, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	p2, err := Decrypt(c2, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if p1 != "same plaintext" || p2 != "same plaintext" {
		t.Errorf("both ciphertexts must decrypt to the original plaintext")
	}
}

func TestDecrypt_Failures(t *testing.T) {
	key := DeriveUserKey("user-1", "secret")
	otherKey := DeriveUserKey("user-2", "secret")

	encrypted, err := Encrypt("secret note", key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	tests := []struct {
		name  string
		input string
		key   []byte
	}{
		{"not base64", "!!!not-base64!!!", key},
		{"too short", "YWJj", key},
		{"wrong key", encrypted, otherKey},
		{"tampered", encrypted[:len(encrypted)-5] + "AAAA=", key},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decrypt(tc.input, tc.key)
			if !errors.Is(err, common.ErrorDecryption) {
				t.Errorf("expected ErrorDecryption, got %v", err)
			}
		})
	}
}

func TestDeriveUserKey(t *testing.T) {
	k1 := DeriveUserKey("user-1", "secret")
	k2 := DeriveUserKey("user-1", "secret")
	k3 := DeriveUserKey("user-2", "secret")
	k4 := DeriveUserKey("user-1", "other-secret")

	if len(k1) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Errorf("expected deterministic derivation")
	}
	if bytes.Equal(k1, k3) {
		t.Errorf("expected different keys for different users")
	}
	if bytes.Equal(k1, k4) {
		t.Errorf("expected different keys for different secrets")
	}
}

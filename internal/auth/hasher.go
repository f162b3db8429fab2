package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing them invalidates stored digests, so they
// are fixed constants rather than configuration.
const (
	saltLen    = 16
	digestLen  = 32
	argonTime  = 1
	argonMem   = 64 * 1024 // KiB
	argonLanes = 4
)

// CreateDigest derives a password digest with a fresh random salt.
// A new salt is generated on every call; salts are never reused across
// records, which is the per-record guard against precomputed-hash attacks.
func CreateDigest(password string) (digest, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	digest = argon2.IDKey([]byte(password), salt, argonTime, argonMem, argonLanes, digestLen)
	return digest, salt, nil
}

// VerifyDigest reports whether password matches the stored digest/salt pair.
// The comparison is constant-time; a wrong password is not an error, just
// a false result.
func VerifyDigest(password string, digest, salt []byte) bool {
	if len(digest) == 0 || len(salt) == 0 {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMem, argonLanes, digestLen)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}

// UnusablePassword returns a random secret for accounts created through an
// external identity provider. Hashing it yields a digest/salt pair with the
// same shape as a real one, but no caller can ever know the password.
func UnusablePassword() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate password seed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

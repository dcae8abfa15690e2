// Package auth implements the security primitives of the accounts
// module: salted password hashing and signed password-reset tokens.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/todoit/accounts/common"
)

// HashPassword hashes a password with a fresh random 128-bit salt and
// returns the stored form "digest_hex:salt_hex", where
// digest = SHA-256(salt_hex || password).
//
// The salt only has to be unique per password, not unpredictable; a
// random UUID rendered as 32 hex characters keeps the stored format
// identical for every row regardless of when it was written.
func HashPassword(password string) string {
	u := uuid.New()
	salt := hex.EncodeToString(u[:])
	digest := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(digest[:]) + ":" + salt
}

// VerifyPassword recomputes the digest for candidate using the salt
// embedded in stored and reports whether they match. The comparison is
// constant-time.
//
// A stored value without the ":" separator yields ErrMalformedPasswordHash.
// Callers must not pass an unset stored value.
func VerifyPassword(stored string, candidate string) (bool, error) {
	digest, salt, found := strings.Cut(stored, ":")
	if !found {
		return false, common.ErrMalformedPasswordHash
	}

	sum := sha256.Sum256([]byte(salt + candidate))
	recomputed := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(digest), []byte(recomputed)) == 1, nil
}

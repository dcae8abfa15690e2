// Package common defines shared sentinel errors used across the
// accounts module. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorDuplicateUsername = errors.New("username already exists")

	// Stored password hash format errors.
	ErrMalformedPasswordHash = errors.New("malformed password hash")

	// Reset token errors (invalid signature or malformed payload).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

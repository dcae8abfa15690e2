package models

import "strconv"

// Account is a row of the Users relation. The Password field holds the
// stored hash in "digest_hex:salt_hex" form, never a plaintext password.
type Account struct {
	ID       int64
	Username string
	Password string
	Email    string
}

// SessionID returns the account id in the string form session middleware
// expects from an identity record.
func (a *Account) SessionID() string {
	return strconv.FormatInt(a.ID, 10)
}

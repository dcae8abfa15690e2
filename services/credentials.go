// Package services contains the business logic of the accounts module.
// This file implements CredentialService, a handle bound to a single
// username that handles registration, login, id resolution, and the
// password-reset flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/todoit/accounts/common"
	"github.com/todoit/accounts/config"
	"github.com/todoit/accounts/dbx"
	"github.com/todoit/accounts/internal/auth"
	"github.com/todoit/accounts/logging"
	"github.com/todoit/accounts/models"
	"github.com/todoit/accounts/repositories/repomanager"
)

// CredentialService provides account-credential operations for one
// username:
// - Register: create the account
// - Login: verify credentials
// - ResolveID: look up (and cache) the numeric account id
// - ResetPassword: replace the stored hash, rejecting no-op resets
// - IssueResetToken / VerifyResetToken: the two halves of the reset link
//
// The handle keeps no state across operations beyond the bound username
// and an id cached by ResolveID or IssueResetToken.
type CredentialService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	logger             logging.Logger
	resetTokenValidity time.Duration
	username           string
	userID             int64
}

// NewCredentialService constructs a CredentialService bound to username,
// using repositories and module config.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, username string) *CredentialService {
	return &CredentialService{
		db:                 db,
		repomanager:        m,
		logger:             logger,
		resetTokenValidity: cfg.ResetTokenValidity,
		username:           username,
	}
}

// Username returns the username the handle is bound to.
func (s *CredentialService) Username() string { return s.username }

// UserID returns the cached account id, or 0 if no prior call resolved it.
func (s *CredentialService) UserID() int64 { return s.userID }

// Register hashes password and inserts a new account row. It returns
// false when the bound username is already taken; any other store
// failure propagates.
func (s *CredentialService) Register(ctx context.Context, password string, email string) (bool, error) {
	repo := s.repomanager.Accounts(s.db)

	account := &models.Account{
		Username: s.username,
		Password: auth.HashPassword(password),
		Email:    email,
	}

	if _, err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			s.logger.Info(ctx, "registration rejected, username taken", "username", s.username)
			return false, nil
		}
		return false, fmt.Errorf("error creating account: %w", err)
	}

	return true, nil
}

// Login verifies password against the stored hash. An unknown username
// is an ordinary failed login, not an error; a malformed stored hash
// propagates as a fatal error.
func (s *CredentialService) Login(ctx context.Context, password string) (bool, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByUsername(ctx, s.username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login attempt for unknown username", "username", s.username)
			return false, nil
		}
		return false, fmt.Errorf("error fetching account: %w", err)
	}

	ok, err := auth.VerifyPassword(account.Password, password)
	if err != nil {
		return false, fmt.Errorf("error verifying password: %w", err)
	}

	return account.Username == s.username && ok, nil
}

// ResolveID looks up the account id for the bound username and caches it
// on the handle. An unknown username yields common.ErrorNotFound.
func (s *CredentialService) ResolveID(ctx context.Context) (int64, error) {
	if s.userID != 0 {
		return s.userID, nil
	}

	repo := s.repomanager.Accounts(s.db)

	id, err := repo.GetIDByUsername(ctx, s.username)
	if err != nil {
		return 0, err
	}

	s.userID = id
	return id, nil
}

// ResetPassword replaces the stored hash with a hash of newPassword. If
// newPassword verifies against the current hash (a no-op reset), it
// returns false and writes nothing. The read-modify-write runs in a
// single transaction with the account row locked, so concurrent resets
// of one account serialize.
func (s *CredentialService) ResetPassword(ctx context.Context, newPassword string) (bool, error) {
	var changed bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByUsernameForUpdate(ctx, s.username)
		if err != nil {
			return fmt.Errorf("error fetching account: %w", err)
		}

		same, err := auth.VerifyPassword(account.Password, newPassword)
		if err != nil {
			return fmt.Errorf("error verifying password: %w", err)
		}
		if same {
			return nil
		}

		if err := repo.UpdatePassword(ctx, s.username, auth.HashPassword(newPassword)); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}

		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if !changed {
		s.logger.Info(ctx, "password reset rejected, new password equals current", "username", s.username)
	}
	return changed, nil
}

// IssueResetToken binds userID to the handle and returns a signed,
// expiring token for a password-reset link. The secret key is supplied
// by the hosting application.
func (s *CredentialService) IssueResetToken(secretKey string, userID int64) (string, error) {
	s.userID = userID
	return auth.GenerateResetToken(userID, []byte(secretKey), s.resetTokenValidity)
}

// VerifyResetToken validates a token produced by IssueResetToken and
// returns the embedded user id. Every failure mode — bad signature,
// malformed token, expiry — collapses to ok == false.
func VerifyResetToken(token string, secretKey string) (int64, bool) {
	id, err := auth.GetUserIDFromResetToken(token, []byte(secretKey))
	if err != nil {
		return 0, false
	}
	return id, true
}

// FindIDByUsername returns the account id for any username, or
// common.ErrorNotFound.
func (s *CredentialService) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	repo := s.repomanager.Accounts(s.db)
	return repo.GetIDByUsername(ctx, username)
}

// FindUsernameByEmail returns the username registered with email, or
// common.ErrorNotFound.
func (s *CredentialService) FindUsernameByEmail(ctx context.Context, email string) (string, error) {
	repo := s.repomanager.Accounts(s.db)
	return repo.GetUsernameByEmail(ctx, email)
}

// FindUsernameByID returns the username for an account id, or
// common.ErrorNotFound.
func (s *CredentialService) FindUsernameByID(ctx context.Context, id int64) (string, error) {
	repo := s.repomanager.Accounts(s.db)
	return repo.GetUsernameByID(ctx, id)
}

package accounts

import (
	"context"

	"github.com/todoit/accounts/models"
)

// Repository is the persistence port for the Users relation. Lookups
// return common.ErrorNotFound when no row matches; Create returns
// common.ErrorDuplicateUsername on a uniqueness conflict. Everything
// else is a fatal store error.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// GetByUsernameForUpdate is GetByUsername with a row lock, for use
	// inside a transaction that will rewrite the password.
	GetByUsernameForUpdate(ctx context.Context, username string) (*models.Account, error)
	GetIDByUsername(ctx context.Context, username string) (int64, error)
	GetUsernameByEmail(ctx context.Context, email string) (string, error)
	GetUsernameByID(ctx context.Context, id int64) (string, error)
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/todoit/accounts/dbx"
	"github.com/todoit/accounts/repositories/accounts"
)

// RepositoryManager vends repositories bound to a DBTX (pool or
// transaction) and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}

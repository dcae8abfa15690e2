package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/todoit/accounts/common"
	"github.com/todoit/accounts/dbx"
	"github.com/todoit/accounts/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO users (username, password, email)
		 VALUES ($1, $2, $3)
		 RETURNING user_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.Password, account.Email).Scan(&account.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT user_id, username, password, email FROM users
		 WHERE username = $1
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByUsernameForUpdate(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT user_id, username, password, email FROM users
		 WHERE username = $1
		 FOR UPDATE
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetIDByUsername(ctx context.Context, username string) (int64, error) {
	query :=
		`SELECT user_id FROM users
		 WHERE username = $1
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, username).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetUsernameByEmail(ctx context.Context, email string) (string, error) {
	query :=
		`SELECT username FROM users
		 WHERE email = $1
		 `

	return r.scanUsername(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetUsernameByID(ctx context.Context, id int64) (string, error) {
	query :=
		`SELECT username FROM users
		 WHERE user_id = $1
		 `

	return r.scanUsername(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	query :=
		`UPDATE users SET password = $1
		 WHERE username = $2
		 `

	res, err := r.db.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.ID, &account.Username, &account.Password, &account.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) scanUsername(row *sql.Row) (string, error) {
	var username string
	err := row.Scan(&username)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return username, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505"
}

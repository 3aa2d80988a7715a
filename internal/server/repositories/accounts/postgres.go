// Package accounts provides a PostgreSQL-backed repository for generated
// accounts stored per user.
package accounts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

// PostgresRepository implements account storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account row and fills in the generated ID and timestamp.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, email, password_plain, password_md5)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.UserID, account.Email, account.Password, account.PasswordMD5).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// GetAllByUser returns every account of userID in generation order.
func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]*models.Account, error) {
	query := ` SELECT id, user_id, email, password_plain, password_md5, created_at from accounts
		WHERE user_id=$1
		ORDER BY created_at, id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		var item models.Account
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Email, &item.Password, &item.PasswordMD5, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByUser returns the number of accounts userID owns.
func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT count(*) from accounts WHERE user_id=$1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// DeleteAllForUser removes every account of userID.
func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM accounts WHERE user_id=$1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accmachine/internal/bot/models"
	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) error {
	query := `INSERT INTO accounts (id, email, password_plain, password_md5, status, error_message, created_at)
			values (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordPlain, a.PasswordMD5, a.Status, a.ErrorMessage, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// UpdateResult moves an account to its final status. Exactly one row must be
// affected, otherwise the id is unknown.
func (r *SQLiteRepository) UpdateResult(ctx context.Context, id string, status models.AccountStatus, errorMessage string) error {
	query := `update accounts set status=?, error_message=? where id=?`
	res, err := r.db.ExecContext(ctx, query, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}

// GetAll lists all accounts, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	query := `select id, email, password_plain, password_md5, status, error_message, created_at
			from accounts order by created_at desc, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var item models.Account
		if err := rows.Scan(&item.ID, &item.Email, &item.PasswordPlain, &item.PasswordMD5,
			&item.Status, &item.ErrorMessage, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `select id, email, password_plain, password_md5, status, error_message, created_at
			from accounts where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Email, &a.PasswordPlain, &a.PasswordMD5, &a.Status, &a.ErrorMessage, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	return a, nil
}

// DeleteByID removes one account. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	query := `delete from accounts where id=?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CountByStatus(ctx context.Context) (map[models.AccountStatus]int, error) {
	query := `select status, count(*) from accounts group by status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	defer rows.Close()

	result := make(map[models.AccountStatus]int)
	for rows.Next() {
		var status models.AccountStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		result[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

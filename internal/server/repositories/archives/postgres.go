package archives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

// PostgresRepository implements archive metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Archive bodies live in object storage, only the
// key and upload status are tracked here.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an archive record in the pending (not uploaded) state.
func (r *PostgresRepository) Create(ctx context.Context, archive *models.Archive) (*models.Archive, error) {
	query := `
		INSERT INTO archives (user_id, storage_key, filename)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		archive.UserID, archive.StorageKey, archive.Filename).Scan(&archive.ID, &archive.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return archive, nil
}

// MarkUploaded marks the archive as uploaded and records its final size.
// Exactly one row must be affected.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string, size int64) error {
	query := `update archives set uploaded=true, size=$2 where id=$1`
	result, err := r.db.ExecContext(ctx, query, id, size)
	if err != nil {
		return fmt.Errorf("failed to mark uploaded: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}

// GetByKey returns the archive row used to authorize and build presigned URLs.
// Storage keys are unique, so at most one row matches.
func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*models.Archive, error) {
	query := ` SELECT id, user_id, storage_key, filename, size, uploaded, created_at from archives
		WHERE storage_key=$1
		`
	result := &models.Archive{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&result.ID, &result.UserID, &result.StorageKey, &result.Filename, &result.Size, &result.Uploaded, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// GetAllByUser returns every archive of userID, newest first.
func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]*models.Archive, error) {
	query := ` SELECT id, user_id, storage_key, filename, size, uploaded, created_at from archives
		WHERE user_id=$1
		ORDER BY created_at DESC
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select archives: %w", err)
	}
	defer rows.Close()

	var result []*models.Archive
	for rows.Next() {
		var item models.Archive
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.StorageKey, &item.Filename, &item.Size, &item.Uploaded, &item.CreatedAt,
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

// Package gamestates provides a PostgreSQL-backed repository for the per-user
// game cursor (current index and level).
package gamestates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

// PostgresRepository implements game state storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the game state row for userID or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.GameState, error) {
	query := `
		SELECT user_id, current_index, current_level, updated_at
		FROM game_states
		WHERE user_id = $1
	`
	state := &models.GameState{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID, &state.CurrentIndex, &state.CurrentLevel, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return state, nil
}

// Upsert writes the cursor for state.UserID, inserting the row on first use.
func (r *PostgresRepository) Upsert(ctx context.Context, state *models.GameState) error {
	query := `
		INSERT INTO game_states (user_id, current_index, current_level, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			current_index = EXCLUDED.current_index,
			current_level = EXCLUDED.current_level,
			updated_at = now();
	`
	res, err := r.db.ExecContext(ctx, query, state.UserID, state.CurrentIndex, state.CurrentLevel)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

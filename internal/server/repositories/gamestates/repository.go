package gamestates

import (
	"context"

	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

type Repository interface {
	// Get returns the user's cursor or a not-found error when the user
	// has never played.
	Get(ctx context.Context, userID string) (*models.GameState, error)

	// Upsert writes the cursor, creating the row on first use.
	Upsert(ctx context.Context, state *models.GameState) error
}

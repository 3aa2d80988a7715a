package accounts

import (
	"context"

	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

// Repository defines server-side storage for generated accounts.
// The list order is the board order: oldest row first, so the stepper
// walks accounts in the order they were generated.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetAllByUser(ctx context.Context, userID string) ([]*models.Account, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

// Package accounts persists the bot's generated accounts in a local store.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/accmachine/internal/bot/models"
)

// Repository describes the bot's local account store.
type Repository interface {
	// Create inserts a new account record with all fields set by the caller.
	Create(ctx context.Context, account *models.Account) error

	// UpdateResult records the submission outcome for an existing account.
	UpdateResult(ctx context.Context, id string, status models.AccountStatus, errorMessage string) error

	// GetAll returns all accounts, newest first.
	GetAll(ctx context.Context) ([]models.Account, error)

	// GetByID returns a single account by its identifier.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// DeleteByID removes one account. Unknown ids are an error.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every account.
	Clear(ctx context.Context) error

	// CountByStatus returns the number of accounts per status.
	CountByStatus(ctx context.Context) (map[models.AccountStatus]int, error)
}

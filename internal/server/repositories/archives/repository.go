package archives

import (
	"context"

	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, archive *models.Archive) (*models.Archive, error)
	MarkUploaded(ctx context.Context, id string, size int64) error

	// GetByKey looks an archive up by its storage key, the public handle
	// clients present when completing or downloading an upload.
	GetByKey(ctx context.Context, key string) (*models.Archive, error)
	GetAllByUser(ctx context.Context, userID string) ([]*models.Archive, error)
}

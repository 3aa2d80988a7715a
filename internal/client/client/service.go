package client

import (
	"context"

	"github.com/dmitrijs2005/accmachine/internal/client/models"
)

type Client interface {
	SetTokens(accessToken string, refreshToken string)
	SetOnTokenRefresh(fn func(accessToken string, refreshToken string))

	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	CreateAccounts(ctx context.Context, accounts []models.Account) (int, error)
	ListAccounts(ctx context.Context) ([]models.Account, int, error)
	ResetAccounts(ctx context.Context) error

	GameCurrent(ctx context.Context) (*models.GameView, error)
	GameNext(ctx context.Context) (*models.GameView, error)

	CreateArchive(ctx context.Context, filename string) (string, string, error)
	CompleteArchive(ctx context.Context, key string, size int64) error
	ListArchives(ctx context.Context) ([]models.Archive, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

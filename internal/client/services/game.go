package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/client/client"
	"github.com/dmitrijs2005/accmachine/internal/client/models"
	"github.com/dmitrijs2005/accmachine/internal/credgen"
	"github.com/dmitrijs2005/accmachine/internal/digest"
	"github.com/dmitrijs2005/accmachine/internal/netx"
)

// uploadToS3 is a test seam for netx.UploadToS3PresignedURL.
var uploadToS3 = netx.UploadToS3PresignedURL

// GameService drives the account game: generating credential batches,
// stepping through them, and exporting the list to remote storage.
type GameService interface {
	Generate(ctx context.Context, count int) (int, error)
	List(ctx context.Context) ([]models.Account, int, error)
	Current(ctx context.Context) (*models.GameView, error)
	Next(ctx context.Context) (*models.GameView, error)
	Reset(ctx context.Context) error
	Export(ctx context.Context) (string, error)
	Archives(ctx context.Context) ([]models.Archive, error)
}

type gameService struct {
	client    client.Client
	generator *credgen.Generator
}

// NewGameService constructs a GameService bound to the given API client and
// credential generator.
func NewGameService(client client.Client, generator *credgen.Generator) GameService {
	return &gameService{client: client, generator: generator}
}

// Generate produces count credential pairs locally and submits them as one
// batch. The MD5 digest is computed here so the server can verify it.
func (s *gameService) Generate(ctx context.Context, count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("count must be positive")
	}

	batch := make([]models.Account, 0, count)
	for i := 0; i < count; i++ {
		password := s.generator.Password()
		batch = append(batch, models.Account{
			Email:       s.generator.Email(),
			Password:    password,
			PasswordMD5: digest.MD5Hex(password),
		})
	}

	n, err := s.client.CreateAccounts(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("error creating accounts: %w", err)
	}
	return n, nil
}

func (s *gameService) List(ctx context.Context) ([]models.Account, int, error) {
	return s.client.ListAccounts(ctx)
}

func (s *gameService) Current(ctx context.Context) (*models.GameView, error) {
	return s.client.GameCurrent(ctx)
}

func (s *gameService) Next(ctx context.Context) (*models.GameView, error) {
	return s.client.GameNext(ctx)
}

// Reset deletes every generated account and puts the game back to the first
// level.
func (s *gameService) Reset(ctx context.Context) error {
	return s.client.ResetAccounts(ctx)
}

// Export renders the account list to CSV, requests a presigned upload URL,
// PUTs the file to storage and confirms the upload. Returns the storage key
// of the new archive.
func (s *gameService) Export(ctx context.Context) (string, error) {
	list, _, err := s.client.ListAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing accounts: %w", err)
	}
	if len(list) == 0 {
		return "", client.ErrNoAccounts
	}

	data, err := accountsCSV(list)
	if err != nil {
		return "", fmt.Errorf("error building export: %w", err)
	}

	filename := fmt.Sprintf("accounts-%s.csv", time.Now().Format("20060102-150405"))

	key, url, err := s.client.CreateArchive(ctx, filename)
	if err != nil {
		return "", fmt.Errorf("error requesting upload url: %w", err)
	}

	if err := uploadToS3(url, data); err != nil {
		return "", fmt.Errorf("error uploading archive: %w", err)
	}

	if err := s.client.CompleteArchive(ctx, key, int64(len(data))); err != nil {
		return "", fmt.Errorf("error completing upload: %w", err)
	}

	return key, nil
}

func (s *gameService) Archives(ctx context.Context) ([]models.Archive, error) {
	return s.client.ListArchives(ctx)
}

// accountsCSV renders accounts in the same column layout the bot export
// uses, minus the status column the server does not track.
func accountsCSV(list []models.Account) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"email", "password", "password_md5", "created_at"}); err != nil {
		return nil, err
	}
	for _, a := range list {
		record := []string{a.Email, a.Password, a.PasswordMD5, a.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

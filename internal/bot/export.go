package bot

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/bot/repositories/accounts"
	"github.com/dmitrijs2005/accmachine/internal/filex"
)

// ExportCSV writes all stored accounts to a CSV file and returns its path.
// With an empty path the file goes to ./exports/accounts-<timestamp>.csv.
// Plaintext passwords are included, that is the point of the export.
func ExportCSV(ctx context.Context, store accounts.Repository, path string) (string, error) {
	if path == "" {
		dir, err := filex.EnsureSubDir("exports")
		if err != nil {
			return "", fmt.Errorf("error creating dir: %w", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("accounts-%s.csv", time.Now().Format("20060102-150405")))
	}

	list, err := store.GetAll(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"email", "password", "password_md5", "status", "created_at"}); err != nil {
		return "", err
	}
	for _, a := range list {
		record := []string{a.Email, a.PasswordPlain, a.PasswordMD5, string(a.Status), a.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}

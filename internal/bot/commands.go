package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/bot/models"
	"github.com/dmitrijs2005/accmachine/internal/common"
)

// Status prints the run state and per-status account counts.
func (a *App) Status(ctx context.Context) error {
	counts, err := a.store.CountByStatus(ctx)
	if err != nil {
		printlnFn("Error reading store:", err)
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	printlnFn(fmt.Sprintf("State: %s", a.promptStatus()))
	printlnFn(fmt.Sprintf("Accounts: %d total, %d pending, %d success, %d error",
		total,
		counts[models.StatusPending],
		counts[models.StatusSuccess],
		counts[models.StatusError]))
	return nil
}

// List prints all stored accounts, newest first.
func (a *App) List(ctx context.Context) error {
	list, err := a.store.GetAll(ctx)
	if err != nil {
		printlnFn("Error reading store:", err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No accounts yet")
		return nil
	}

	for _, acc := range list {
		line := fmt.Sprintf("%s  %-30s  %-16s  %-7s  %s",
			acc.ID, acc.Email, acc.PasswordPlain, acc.Status, acc.CreatedAt.Format(time.RFC3339))
		if acc.ErrorMessage != "" {
			line += "  " + acc.ErrorMessage
		}
		printlnFn(line)
	}
	printlnFn(fmt.Sprintf("%d account(s)", len(list)))
	return nil
}

// Delete removes one account by id.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("Account not found:", id)
		} else {
			printlnFn("Error deleting account:", err)
		}
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

// Clear removes all accounts.
func (a *App) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		printlnFn("Error clearing accounts:", err)
		return err
	}
	printlnFn("All accounts deleted")
	return nil
}

// Export writes the accounts to a CSV file and prints its path.
func (a *App) Export(ctx context.Context, path string) error {
	out, err := ExportCSV(ctx, a.store, path)
	if err != nil {
		printlnFn("Error exporting accounts:", err)
		return err
	}
	printlnFn("Exported to", out)
	return nil
}

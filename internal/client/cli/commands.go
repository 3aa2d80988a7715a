package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/accmachine/internal/client/client"
	"github.com/dmitrijs2005/accmachine/internal/client/models"
)

// Generate produces count credential pairs and submits them to the server.
func (a *App) Generate(ctx context.Context, count int) error {
	n, err := a.gameService.Generate(ctx, count)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Generated %d accounts", n))
	return nil
}

// List prints all generated accounts in insertion order.
func (a *App) List(ctx context.Context) error {
	list, total, err := a.gameService.List(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	for n, acc := range list {
		printlnFn(fmt.Sprintf("%d. %s %s", n+1, acc.Email, acc.Password))
	}
	printlnFn(fmt.Sprintf("Total: %d", total))
	return nil
}

// Current shows the account under the game cursor.
func (a *App) Current(ctx context.Context) error {
	view, err := a.gameService.Current(ctx)
	if err != nil {
		printGameError(err)
		return err
	}
	printView(view)
	return nil
}

// Next steps the cursor to the next account; wrapping past the last one
// starts the next level.
func (a *App) Next(ctx context.Context) error {
	view, err := a.gameService.Next(ctx)
	if err != nil {
		printGameError(err)
		return err
	}
	printView(view)
	return nil
}

// Reset deletes all generated accounts and restarts the game. Asks for an
// explicit confirmation first.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes all generated accounts. Type 'yes' to continue", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.gameService.Reset(ctx); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Accounts cleared")
	return nil
}

// Export uploads the account list to remote storage as a CSV archive.
func (a *App) Export(ctx context.Context) error {
	key, err := a.gameService.Export(ctx)
	if err != nil {
		printGameError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Uploaded %s", key))
	return nil
}

// Archives lists uploaded archives with their upload state.
func (a *App) Archives(ctx context.Context) error {
	list, err := a.gameService.Archives(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	for _, item := range list {
		status := "pending"
		if item.Uploaded {
			status = "uploaded"
		}
		printlnFn(fmt.Sprintf("%s  %s  %d bytes  (%s)", item.Key, item.Filename, item.Size, status))
	}
	printlnFn(fmt.Sprintf("Total: %d", len(list)))
	return nil
}

func printView(view *models.GameView) {
	printlnFn(fmt.Sprintf("Level %d, account %d of %d", view.Level, view.Index+1, view.Total))
	printlnFn(fmt.Sprintf("%s %s", view.Account.Email, view.Account.Password))
}

func printGameError(err error) {
	if errors.Is(err, client.ErrNoAccounts) {
		printlnFn("No accounts yet, use 'generate' first")
		return
	}
	printlnFn("Error:", err)
}

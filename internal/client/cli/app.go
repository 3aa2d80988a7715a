package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/client/client"
	"github.com/dmitrijs2005/accmachine/internal/client/config"
	"github.com/dmitrijs2005/accmachine/internal/client/services"
	"github.com/dmitrijs2005/accmachine/internal/client/session"
	"github.com/dmitrijs2005/accmachine/internal/credgen"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	gameService services.GameService
	userName    string
	Mode        Mode
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewMachineClientService(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(c.SessionPath)
	if err != nil {
		return nil, err
	}

	profile := credgen.Default()
	if c.ProfilePath != "" {
		profile, err = credgen.LoadProfile(c.ProfilePath)
		if err != nil {
			return nil, err
		}
	}

	generator, err := credgen.New(profile)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient, store)
	gs := services.NewGameService(apiClient, generator)

	return &App{config: c, authService: as, gameService: gs, reader: bufio.NewReader(os.Stdin)}, nil
}

func (app *App) setMode(mode Mode) {
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(ctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

package bot

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/accmachine/internal/bot/config"
	"github.com/dmitrijs2005/accmachine/internal/bot/repositories/accounts"
	"github.com/dmitrijs2005/accmachine/internal/credgen"
	"github.com/dmitrijs2005/accmachine/internal/regapi"
	"github.com/dmitrijs2005/accmachine/internal/tracing"
)

// App owns the bot's long-lived state: the store, the generator, the endpoint
// client and the currently running Runner, if any.
type App struct {
	config *config.Config
	db     *sql.DB
	store  accounts.Repository
	gen    *credgen.Generator
	client *regapi.Client

	running atomic.Bool
	mu      sync.Mutex
	runner  *Runner
	wg      sync.WaitGroup
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if c.TraceFile != "" {
		if err := tracing.Init("accmachine-bot", "1.0.0", c.TraceFile); err != nil {
			return nil, err
		}
	}

	db, err := InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	profile := credgen.Default()
	if c.ProfilePath != "" {
		profile, err = credgen.LoadProfile(c.ProfilePath)
		if err != nil {
			return nil, err
		}
	}

	gen, err := credgen.New(profile)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		db:     db,
		store:  accounts.NewSQLiteRepository(db),
		gen:    gen,
		client: regapi.New(c.EndpointURL, c.RequestTimeout, c.DryRun),
	}, nil
}

// Run drives the REPL until exit or EOF, then waits for an in-flight run to
// finish before closing the database.
func (a *App) Run(ctx context.Context) {
	if a.config.EndpointURL == "" && !a.config.DryRun {
		printlnFn("No endpoint configured, submissions will run dry")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.promptStatus, scanner)

	if a.isRunning() {
		_ = a.Stop()
	}
	a.wg.Wait()
	_ = a.db.Close()
}

func (a *App) isRunning() bool {
	return a.running.Load()
}

func (a *App) promptStatus() string {
	if a.isRunning() {
		return "running"
	}
	return "idle"
}

// Start launches a run in the background. With target <= 0 the configured
// default count is used. Only one run may be in flight at a time.
func (a *App) Start(ctx context.Context, target int) error {
	if target <= 0 {
		target = a.config.TargetCount
	}

	if !a.running.CompareAndSwap(false, true) {
		printlnFn("Run already in progress, use 'stop' to interrupt it")
		return nil
	}

	runner := NewRunner(a.gen, a.store, a.client, a.config.RequestDelay)
	a.mu.Lock()
	a.runner = runner
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.running.Store(false)

		summary, err := runner.Run(ctx, target)
		if err != nil {
			printlnFn(fmt.Sprintf("Run interrupted: %v", err))
		}
		printlnFn(fmt.Sprintf("Run finished: generated %d, ok %d, failed %d",
			summary.Generated, summary.Succeeded, summary.Failed))
	}()

	printlnFn(fmt.Sprintf("Started a run of %d account(s)", target))
	return nil
}

// Stop requests a cooperative stop of the current run, if any.
func (a *App) Stop() error {
	if !a.running.Load() {
		printlnFn("No run in progress")
		return nil
	}

	a.mu.Lock()
	if a.runner != nil {
		a.runner.Stop()
	}
	a.mu.Unlock()

	printlnFn("Stop requested, the run exits after the current account")
	return nil
}

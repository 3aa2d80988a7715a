package bot

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/bot/models"
	"github.com/dmitrijs2005/accmachine/internal/bot/repositories/accounts"
	"github.com/dmitrijs2005/accmachine/internal/credgen"
	"github.com/dmitrijs2005/accmachine/internal/digest"
	"github.com/dmitrijs2005/accmachine/internal/regapi"
	"github.com/dmitrijs2005/accmachine/internal/tracing"
	"github.com/google/uuid"
)

// Registrar submits one account to the registration endpoint.
// *regapi.Client satisfies this interface.
type Registrar interface {
	Register(ctx context.Context, email, passwordMD5 string) (*regapi.RegisterResponse, error)
}

// RunSummary is the outcome of one run.
type RunSummary struct {
	Generated int
	Succeeded int
	Failed    int
}

// Runner drives a single registration run: generate an account, persist it,
// submit it, record the outcome, repeat. A failed submission marks the record
// and the loop moves on; nothing is ever retried. A Runner is one-shot —
// create a new one for every run.
type Runner struct {
	gen       *credgen.Generator
	store     accounts.Repository
	registrar Registrar
	delay     time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRunner(gen *credgen.Generator, store accounts.Repository, registrar Registrar, delay time.Duration) *Runner {
	return &Runner{
		gen:       gen,
		store:     store,
		registrar: registrar,
		delay:     delay,
		stopCh:    make(chan struct{}),
	}
}

// Stop requests a cooperative stop. The run finishes the account it is
// working on and exits before starting the next one. Safe to call multiple
// times and from another goroutine.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Run performs up to target iterations, waiting r.delay between them.
// It returns early on Stop or context cancellation; the summary always
// reflects the work actually done.
func (r *Runner) Run(ctx context.Context, target int) (RunSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "bot.run", "INTERNAL")

	summary, err := r.run(ctx, target)
	tracing.EndSpan(span, err)
	return summary, err
}

func (r *Runner) run(ctx context.Context, target int) (RunSummary, error) {
	var summary RunSummary

	for i := 0; i < target; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-r.stopCh:
				return summary, nil
			case <-time.After(r.delay):
			}
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case <-r.stopCh:
			return summary, nil
		default:
		}

		if err := r.registerOne(ctx, &summary); err != nil {
			// ошибка локального стора, продолжать нет смысла
			return summary, err
		}
	}

	return summary, nil
}

// registerOne generates one account, saves it as pending, submits it and
// records the result. Only a store failure is returned as an error.
func (r *Runner) registerOne(ctx context.Context, summary *RunSummary) error {
	ctx, span := tracing.StartSpan(ctx, "bot.register", "INTERNAL")

	password := r.gen.Password()
	account := &models.Account{
		ID:            uuid.NewString(),
		Email:         r.gen.Email(),
		PasswordPlain: password,
		PasswordMD5:   digest.MD5Hex(password),
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}
	span.WithAttributes(map[string]string{"account_id": account.ID, "email": account.Email})

	if err := r.store.Create(ctx, account); err != nil {
		tracing.EndSpan(span, err)
		return err
	}
	summary.Generated++

	_, err := r.registrar.Register(ctx, account.Email, account.PasswordMD5)
	if err != nil {
		summary.Failed++
		tracing.EndSpan(span, err)
		return r.store.UpdateResult(ctx, account.ID, models.StatusError, err.Error())
	}

	summary.Succeeded++
	tracing.EndSpan(span, nil)
	return r.store.UpdateResult(ctx, account.ID, models.StatusSuccess, "")
}

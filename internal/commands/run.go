package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"courier/internal/domain"
	clierrors "courier/internal/errors"
	"courier/pkg/request"
)

// RunCommand sends every request of a definitions file concurrently.
type RunCommand struct {
	loader   domain.DefinitionLoader
	sessions domain.SessionFactory
	logger   *slog.Logger
}

// NewRunCommand creates a new run command.
func NewRunCommand(loader domain.DefinitionLoader, sessions domain.SessionFactory, logger *slog.Logger) *RunCommand {
	return &RunCommand{
		loader:   loader,
		sessions: sessions,
		logger:   logger,
	}
}

// RunRequest contains the parameters for the run command.
type RunRequest struct {
	Path     string
	Defaults request.Defaults
	Session  domain.SessionConfig
	// CancelAfter closes the backend service once elapsed. Zero waits for
	// every request.
	CancelAfter time.Duration
	// Filter skips matching requests. Nil sends everything.
	Filter domain.RequestFilter
}

// RunResult contains the result of the run command.
type RunResult struct {
	Requests  []Summary `json:"requests" yaml:"requests"`
	Succeeded int       `json:"succeeded" yaml:"succeeded"`
	Failed    int       `json:"failed" yaml:"failed"`
	Cancelled int       `json:"cancelled" yaml:"cancelled"`
	Skipped   []string  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Execute loads the definitions, dispatches them all and waits for every
// completion. When any request did not succeed, the result is returned along
// with a MultiError of the failures.
func (c *RunCommand) Execute(ctx context.Context, req RunRequest) (*RunResult, error) {
	defs, err := c.loader.Load(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions: %w", err)
	}

	var skipped []string
	if req.Filter != nil {
		selected := defs[:0:0]
		for _, def := range defs {
			if req.Filter.ShouldExclude(def.Name) {
				skipped = append(skipped, def.Name)
				continue
			}
			selected = append(selected, def)
		}
		defs = selected
	}

	svc := newBackend(c.sessions, req.Session, c.logger)
	defer svc.Close()

	c.logger.InfoContext(ctx, "Dispatching requests", "count", len(defs), "skipped", len(skipped), "path", req.Path)

	summaries := make([]Summary, len(defs))
	var wg sync.WaitGroup

	for i, def := range defs {
		r, err := BuildRequest(def, req.Defaults)
		if err != nil {
			summaries[i] = summarize(def, Reply{}, err, 0)
			continue
		}

		wg.Add(1)
		dispatch(ctx, svc, def, r, c.logger, func(s Summary) {
			summaries[i] = s
			wg.Done()
		})
	}

	if req.CancelAfter > 0 {
		timer := time.AfterFunc(req.CancelAfter, func() {
			c.logger.WarnContext(ctx, "Cancelling pending requests", "after", req.CancelAfter)
			svc.Close()
		})
		defer timer.Stop()
	}

	wg.Wait()

	result := &RunResult{Requests: summaries, Skipped: skipped}
	var errs []error
	for _, s := range summaries {
		switch s.Outcome {
		case OutcomeSuccess:
			result.Succeeded++
		case OutcomeCancelled:
			result.Cancelled++
		default:
			result.Failed++
		}
		errs = append(errs, s.Err())
	}

	c.logger.InfoContext(ctx, "Run completed",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"cancelled", result.Cancelled)

	if err := clierrors.Join(errs...); err != nil {
		return result, clierrors.NewMultiError(flatten(err))
	}
	return result, nil
}

func flatten(err error) []error {
	if multi, ok := err.(*clierrors.MultiError); ok { //nolint:errorlint // Join returns the concrete type
		return multi.Errors
	}
	return []error{err}
}

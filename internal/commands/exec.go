package commands

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"courier/internal/domain"
	clierrors "courier/internal/errors"
	"courier/pkg/request"
)

// ExecCommand sends a single request.
type ExecCommand struct {
	sessions domain.SessionFactory
	tokens   domain.TokenReader
	logger   *slog.Logger
}

// NewExecCommand creates a new exec command.
func NewExecCommand(sessions domain.SessionFactory, tokens domain.TokenReader, logger *slog.Logger) *ExecCommand {
	return &ExecCommand{
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// ExecRequest contains the parameters for the exec command.
type ExecRequest struct {
	Definition domain.RequestDefinition
	Defaults   request.Defaults
	Session    domain.SessionConfig
	AskToken   bool
}

// ExecResult contains the result of the exec command.
type ExecResult struct {
	Summary Summary
}

// Execute sends the request and waits for its completion. A failed request
// returns both the result and its classified error.
func (c *ExecCommand) Execute(ctx context.Context, req ExecRequest) (*ExecResult, error) {
	def := req.Definition

	if req.AskToken {
		token, err := c.tokens.ReadToken(ctx, "Bearer token: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		def.Headers = maps.Clone(def.Headers)
		if def.Headers == nil {
			def.Headers = make(map[request.HeaderKey]request.HeaderValue)
		}
		def.Headers[request.HeaderAuthorization] = request.Bearer(token)
	}

	r, err := BuildRequest(def, req.Defaults)
	if err != nil {
		return nil, clierrors.NewValidationError("decode", string(def.Decode), "supported_values", err.Error())
	}

	svc := newBackend(c.sessions, req.Session, c.logger)
	defer svc.Close()

	c.logger.InfoContext(ctx, "Sending request", "request", r.String())

	done := make(chan Summary, 1)
	dispatch(ctx, svc, def, r, c.logger, func(s Summary) { done <- s })

	var summary Summary
	select {
	case summary = <-done:
	case <-ctx.Done():
		svc.Close()
		summary = <-done
	}

	result := &ExecResult{Summary: summary}
	if err := summary.Err(); err != nil {
		return result, err
	}
	return result, nil
}

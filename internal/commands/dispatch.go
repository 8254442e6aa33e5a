package commands

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/domain"
	"courier/pkg/backend"
	"courier/pkg/request"
	"courier/pkg/transport"
)

func newBackend(sessions domain.SessionFactory, cfg domain.SessionConfig, logger *slog.Logger) *backend.Service {
	ts := transport.NewService(sessions.NewSession(cfg), transport.WithLogger(logger))
	return backend.NewService(ts, backend.WithLogger(logger))
}

// dispatch executes r and reports its summary through done exactly once.
func dispatch(
	ctx context.Context,
	svc *backend.Service,
	def domain.RequestDefinition,
	r request.Request[Reply],
	logger *slog.Logger,
	done func(Summary),
) {
	start := time.Now()
	backend.Execute(ctx, svc, r, func(reply Reply, err error) {
		s := summarize(def, reply, err, time.Since(start))
		logger.DebugContext(ctx, "Request finished",
			"name", s.Name,
			"outcome", s.Outcome,
			"status", s.Status,
			"duration", s.Duration)
		done(s)
	})
}

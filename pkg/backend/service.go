// Package backend executes declarative requests and delivers typed results.
package backend

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"courier/pkg/request"
	"courier/pkg/transport"
)

// TransportService is the transport capability the backend consumes.
// *transport.Service satisfies it.
type TransportService interface {
	Execute(req *http.Request, completion transport.Completion) transport.Key
	CancelTask(req *http.Request)
	CancelAllTasks()
}

// Service runs requests on a TransportService. Close it to cancel whatever is
// still in flight.
type Service struct {
	transport TransportService
	logger    *slog.Logger
	closeOnce sync.Once
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a backend service.
func NewService(ts TransportService, opts ...Option) *Service {
	s := &Service{
		transport: ts,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute sends req and calls completion exactly once with the decoded value
// or an error produced by the request's failure mappers. It never blocks; the
// completion may run on another goroutine. The request timeout, when set,
// bounds the call through ctx.
func Execute[T any](ctx context.Context, s *Service, req request.Request[T], completion func(T, error)) {
	var zero T

	cancel := context.CancelFunc(func() {})
	if timeout := req.Timeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		cancel()
		s.logger.WarnContext(ctx, "Failed to build request", "request", req.String(), "error", err)
		completion(zero, err)
		return
	}

	s.logger.DebugContext(ctx, "Executing request", "request", req.String())

	s.transport.Execute(httpReq, func(result transport.Result) {
		defer cancel()

		if result.Failure != nil {
			s.logger.DebugContext(ctx, "Request failed",
				"request", req.String(),
				"code", result.Failure.Err.Code.String())
			completion(zero, req.MapTransportFailure(result.Failure))
			return
		}

		value, err := req.Transform(*result.Success)
		if err != nil {
			s.logger.DebugContext(ctx, "Response transform failed", "request", req.String(), "error", err)
			completion(zero, err)
			return
		}
		completion(value, nil)
	})
}

// CancelTask cancels in-flight requests equal to req.
func (s *Service) CancelTask(req *http.Request) {
	s.transport.CancelTask(req)
}

// CancelAllTasks cancels every in-flight request.
func (s *Service) CancelAllTasks() {
	s.transport.CancelAllTasks()
}

// Close cancels all in-flight requests. Calling it again has no effect.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing backend service")
		s.transport.CancelAllTasks()
	})
}

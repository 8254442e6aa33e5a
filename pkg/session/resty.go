// Package session provides the default platform transport: a resty-backed
// implementation of transport.Session.
package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"courier/pkg/transport"
)

// Resty is a transport.Session that runs each data task on its own goroutine
// through a shared resty client. Retries are disabled.
type Resty struct {
	client    *resty.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	userAgent string
}

// Option configures a Resty session.
type Option func(*Resty)

// WithLogger sets the logger for request and response debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resty) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTLSInsecureSkipVerify disables certificate verification.
func WithTLSInsecureSkipVerify(skip bool) Option {
	return func(r *Resty) {
		r.client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: skip, //nolint:gosec // User-configurable for self-signed certificates
		})
	}
}

// WithUserAgent sets a User-Agent for requests that do not carry one.
func WithUserAgent(userAgent string) Option {
	return func(r *Resty) {
		r.userAgent = userAgent
	}
}

// WithRateLimit throttles outgoing requests to rps per second with the given
// burst. A non-positive rps removes the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(r *Resty) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient builds the resty client on top of an existing http.Client.
// It replaces the client configured so far, so pass it first.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resty) {
		r.client = resty.NewWithClient(hc)
	}
}

// NewResty creates a resty-backed session.
func NewResty(opts ...Option) *Resty {
	r := &Resty{
		client: resty.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client.SetRetryCount(0)
	r.client.SetLogger(restyLogger{logger: r.logger})

	r.client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if r.limiter == nil {
			return nil
		}
		return r.limiter.Wait(req.Context())
	})

	r.client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if r.userAgent != "" && req.Header.Get("User-Agent") == "" {
			req.SetHeader("User-Agent", r.userAgent)
		}
		r.logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	r.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		r.logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return r
}

// DataTask creates a task for req. The task does nothing until Resume.
func (r *Resty) DataTask(req *http.Request, completion func(transport.Outcome)) transport.DataTask {
	ctx, cancel := context.WithCancel(req.Context())
	return &dataTask{
		session:    r,
		req:        req,
		ctx:        ctx,
		cancel:     cancel,
		completion: completion,
	}
}

type dataTask struct {
	session    *Resty
	req        *http.Request
	ctx        context.Context
	cancel     context.CancelFunc
	completion func(transport.Outcome)
	once       sync.Once
}

func (t *dataTask) Resume() {
	t.once.Do(func() {
		go t.run()
	})
}

func (t *dataTask) Cancel() {
	t.cancel()
}

func (t *dataTask) run() {
	defer t.cancel()
	t.completion(t.session.do(t.ctx, t.req))
}

func (r *Resty) do(ctx context.Context, req *http.Request) transport.Outcome {
	rr := r.client.R().SetContext(ctx)
	for name, values := range req.Header {
		for _, v := range values {
			rr.Header.Add(name, v)
		}
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return transport.Outcome{Err: fmt.Errorf("failed to read request body: %w", err)}
		}
		data, err := io.ReadAll(body)
		_ = body.Close()
		if err != nil {
			return transport.Outcome{Err: fmt.Errorf("failed to read request body: %w", err)}
		}
		rr.SetBody(data)
	} else if req.Body != nil && req.Body != http.NoBody {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL.String())
	if resp == nil || resp.RawResponse == nil {
		return transport.Outcome{Err: err}
	}
	return transport.Outcome{
		Body:     resp.Body(),
		Response: resp.RawResponse,
		Err:      err,
	}
}

// restyLogger routes resty's own diagnostics to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}

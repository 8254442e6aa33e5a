// Package http adapts the resty session to the command layer.
package http

import (
	"log/slog"

	"courier/internal/domain"
	"courier/pkg/session"
	"courier/pkg/transport"
)

// SessionFactory builds resty sessions that share one logger.
type SessionFactory struct {
	logger *slog.Logger
}

// NewSessionFactory creates a factory for resty-backed sessions.
func NewSessionFactory(logger *slog.Logger) *SessionFactory {
	return &SessionFactory{logger: logger}
}

// NewSession creates a session configured from cfg.
func (f *SessionFactory) NewSession(cfg domain.SessionConfig) transport.Session {
	opts := []session.Option{
		session.WithLogger(f.logger),
		session.WithUserAgent(cfg.UserAgent),
		session.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, session.WithTLSInsecureSkipVerify(true))
	}

	f.logger.Debug("Creating HTTP session",
		"userAgent", cfg.UserAgent,
		"rateLimit", cfg.RateLimit,
		"insecureSkipVerify", cfg.InsecureSkipVerify)

	return session.NewResty(opts...)
}

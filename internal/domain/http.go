package domain

import (
	"courier/pkg/transport"
)

// SessionConfig holds the transport settings that apply to one command run.
type SessionConfig struct {
	UserAgent          string
	InsecureSkipVerify bool
	RateLimit          float64
	RateBurst          int
}

// SessionFactory creates the platform session requests are sent through.
type SessionFactory interface {
	NewSession(cfg SessionConfig) transport.Session
}

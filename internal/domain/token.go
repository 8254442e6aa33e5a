package domain

import (
	"context"
)

// TokenReader reads a bearer token from the environment or the terminal.
type TokenReader interface {
	ReadToken(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}

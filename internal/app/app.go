package app

import (
	"context"
	"io"
	"log/slog"

	"courier/internal/config"
	"courier/internal/domain"
)

// App contains all application dependencies.
type App struct {
	// Validated settings from file, environment and flags
	Settings *config.Settings

	// Factories for creating services on-demand
	Sessions domain.SessionFactory

	// File operations and request definitions
	FileSystem  domain.FileSystemAdapter
	Definitions domain.DefinitionLoader

	// I/O dependencies
	Tokens domain.TokenReader

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application bootstrap options.
type Config struct {
	ConfigFile string
	EnvFiles   []string
	Verbose    bool
	Stdin      io.Reader
	Stderr     io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithConfigFile reads settings from path instead of the default location.
func WithConfigFile(path string) Option {
	return func(cfg *Config) {
		cfg.ConfigFile = path
	}
}

// WithEnvFiles loads the given .env files before reading the environment.
func WithEnvFiles(paths ...string) Option {
	return func(cfg *Config) {
		cfg.EnvFiles = paths
	}
}

// WithVerbose forces debug logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
	}
}

// WithIO sets the streams used for token prompts and logs.
func WithIO(stdin io.Reader, stderr io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdin = stdin
		cfg.Stderr = stderr
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &Config{
		EnvFiles: []string{".env"},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg)
}

package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"courier/internal/adapters/filesystem"
	httpadapter "courier/internal/adapters/http"
	"courier/internal/adapters/terminal"
	"courier/internal/config"
	"courier/internal/definitions"
	"courier/internal/logging"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	// Load settings.
	if err := config.LoadDotEnv(cfg.EnvFiles...); err != nil {
		return nil, err
	}

	fs := filesystem.New()
	configDir := ""
	if cfg.ConfigFile == "" {
		home, err := fs.UserHomeDir()
		if err == nil {
			configDir = config.DefaultConfigDirFrom(home)
		}
	}

	v := viper.New()
	if err := config.Configure(v, cfg.ConfigFile, configDir); err != nil {
		return nil, err
	}
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	// Create logger.
	logCfg := settings.LoggingConfig()
	logCfg.Output = cfg.Stderr
	if cfg.Verbose {
		logCfg.Level = slog.LevelDebug
	}
	logger := logging.NewLogger(logCfg)

	logger.DebugContext(ctx, "Initializing courier with configuration",
		"configFile", v.ConfigFileUsed(),
		"logLevel", logCfg.Level.String(),
		"settings", settings.String())

	return &App{
		Settings:    settings,
		Sessions:    httpadapter.NewSessionFactory(logger),
		FileSystem:  fs,
		Definitions: definitions.NewLoader(fs, logger),
		Tokens:      terminal.NewAdapter(cfg.Stdin, cfg.Stderr),
		Logger:      logger,
		Config:      cfg,
	}, nil
}

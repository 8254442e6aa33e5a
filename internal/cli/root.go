// Package cli wires the courier commands into cobra.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"courier/internal/app"
	"courier/internal/config"
	"courier/internal/domain"
	clierrors "courier/internal/errors"
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

type rootOptions struct {
	cfgFile  string
	envFiles []string
	verbose  bool
}

// NewRootCommand builds the courier command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "courier",
		Short: "Send declarative HTTP requests",
		Long: `Courier sends HTTP requests described by flags or YAML definition files
and prints the decoded responses. Transport failures, HTTP error statuses and
undecodable bodies are reported separately.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().
		StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/courier/config.yaml)")
	rootCmd.PersistentFlags().
		StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "env files loaded before reading COURIER_* variables")
	rootCmd.PersistentFlags().
		BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newExecCommand(opts),
		newRunCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the root command and exits with the status for its error
// category.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if code := clierrors.ExitCode(err); code != clierrors.ExitOK {
		os.Exit(code)
	}
}

func loadApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	return app.NewApp(cmd.Context(),
		app.WithConfigFile(opts.cfgFile),
		app.WithEnvFiles(opts.envFiles...),
		app.WithVerbose(opts.verbose),
		app.WithIO(cmd.InOrStdin(), cmd.ErrOrStderr()),
	)
}

func sessionConfig(settings *config.Settings) domain.SessionConfig {
	return domain.SessionConfig{
		UserAgent:          settings.UserAgent,
		InsecureSkipVerify: settings.InsecureSkipVerify,
		RateLimit:          settings.RateLimit,
		RateBurst:          settings.RateBurst,
	}
}

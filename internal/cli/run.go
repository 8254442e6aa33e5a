package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"courier/internal/commands"
	clierrors "courier/internal/errors"
	"courier/internal/filter"
)

type runOptions struct {
	cancelAfter time.Duration
	rate        float64
	exclude     []string
	output      string
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Send every request in a definitions file",
		Long: `Load a YAML definitions file, send all of its requests concurrently and
print a summary of every outcome.

With --cancel-after, requests still pending when the duration elapses are
cancelled and reported as such. The command fails if any request did not succeed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.cancelAfter, "cancel-after", 0, "cancel requests still pending after this duration")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "maximum requests per second (default from settings)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "skip requests whose name matches this regex, repeatable")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(commands.OutputYAML), "output format: yaml or json")

	return cmd
}

func runRun(cmd *cobra.Command, root *rootOptions, opts *runOptions, path string) error {
	format, err := commands.ParseOutputFormat(opts.output)
	if err != nil {
		return clierrors.NewValidationError("output", opts.output, "supported_values", err.Error())
	}
	if opts.cancelAfter < 0 {
		return clierrors.NewValidationError("cancel-after", opts.cancelAfter.String(), "non_negative", "must not be negative")
	}

	application, err := loadApp(cmd, root)
	if err != nil {
		return err
	}

	exclude, err := filter.New(opts.exclude, application.Logger)
	if err != nil {
		return clierrors.NewValidationError("exclude", strings.Join(opts.exclude, ","), "regex", err.Error())
	}

	session := sessionConfig(application.Settings)
	if cmd.Flags().Changed("rate") {
		session.RateLimit = opts.rate
	}

	runCommand := commands.NewRunCommand(application.Definitions, application.Sessions, application.Logger)
	result, runErr := runCommand.Execute(cmd.Context(), commands.RunRequest{
		Path:        path,
		Defaults:    application.Settings.RequestDefaults(),
		Session:     session,
		CancelAfter: opts.cancelAfter,
		Filter:      exclude,
	})
	if result == nil {
		return runErr
	}

	if err := commands.Render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	return runErr
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"courier/internal/commands"
	"courier/internal/definitions"
	"courier/internal/domain"
	clierrors "courier/internal/errors"
	"courier/pkg/request"
)

type execOptions struct {
	method      string
	url         string
	headers     []string
	data        string
	dataFile    string
	contentType string
	timeout     time.Duration
	cachePolicy string
	decode      string
	rootKey     string
	askToken    bool
	output      string
}

func newExecCommand(root *rootOptions) *cobra.Command {
	opts := &execOptions{}

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Send a single request",
		Long: `Send one HTTP request and print the decoded response.

Non-2xx responses, transport failures and undecodable bodies make the command fail.`,
		Example: `  courier exec --url https://example.com/posts/1
  courier exec -X POST --url https://example.com/posts -H 'Accept: application/json' --data '{"a":1}' --content-type application/json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExec(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.method, "method", "X", "GET", "HTTP method")
	flags.StringVarP(&opts.url, "url", "u", "", "request URL (required)")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "header in 'Key: Value' form, repeatable")
	flags.StringVarP(&opts.data, "data", "d", "", "request body")
	flags.StringVar(&opts.dataFile, "data-file", "", "read the request body from a file")
	flags.StringVar(&opts.contentType, "content-type", "", "content type of the request body")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from settings)")
	flags.StringVar(&opts.cachePolicy, "cache-policy", "", "cache policy (default from settings)")
	flags.StringVar(&opts.decode, "decode", string(domain.DecodeJSON), "response decoder: json, yaml, cbor, html, raw, empty, validated-empty")
	flags.StringVar(&opts.rootKey, "root-key", "", "decode the value nested under this key")
	flags.BoolVar(&opts.askToken, "ask-token", false, "prompt for a bearer token (or read COURIER_TOKEN)")
	flags.StringVarP(&opts.output, "output", "o", string(commands.OutputYAML), "output format: yaml or json")
	_ = cmd.MarkFlagRequired("url")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}

func runExec(cmd *cobra.Command, root *rootOptions, opts *execOptions) error {
	format, err := commands.ParseOutputFormat(opts.output)
	if err != nil {
		return clierrors.NewValidationError("output", opts.output, "supported_values", err.Error())
	}

	application, err := loadApp(cmd, root)
	if err != nil {
		return err
	}

	def, err := execDefinition(cmd, opts)
	if err != nil {
		return err
	}
	if opts.dataFile != "" {
		body, err := application.FileSystem.ReadFile(opts.dataFile)
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
		def.Body = body
	}

	execCommand := commands.NewExecCommand(application.Sessions, application.Tokens, application.Logger)
	result, err := execCommand.Execute(cmd.Context(), commands.ExecRequest{
		Definition: def,
		Defaults:   application.Settings.RequestDefaults(),
		Session:    sessionConfig(application.Settings),
		AskToken:   opts.askToken,
	})
	if err != nil {
		return err
	}

	if result.Summary.Value == nil {
		return nil
	}
	return commands.Render(cmd.OutOrStdout(), format, result.Summary.Value)
}

func execDefinition(cmd *cobra.Command, opts *execOptions) (domain.RequestDefinition, error) {
	method, err := request.ParseMethod(opts.method)
	if err != nil {
		return domain.RequestDefinition{}, clierrors.NewValidationError("method", opts.method, "supported_values", err.Error())
	}

	u, err := definitions.ParseURL(opts.url)
	if err != nil {
		return domain.RequestDefinition{}, clierrors.NewValidationError("url", opts.url, "http_url", err.Error())
	}

	decoder := domain.Decoder(strings.ToLower(opts.decode))
	if !decoder.Valid() {
		return domain.RequestDefinition{}, clierrors.NewValidationError("decode", opts.decode, "supported_values", "unknown decoder")
	}

	headers, err := parseHeaders(opts.headers)
	if err != nil {
		return domain.RequestDefinition{}, err
	}

	def := domain.RequestDefinition{
		Name:        "exec",
		Method:      method,
		URL:         u,
		Headers:     headers,
		ContentType: request.HeaderValue(opts.contentType),
		Decode:      decoder,
		RootKey:     opts.rootKey,
	}
	if opts.data != "" {
		def.Body = []byte(opts.data)
	}
	if cmd.Flags().Changed("timeout") {
		if opts.timeout < 0 {
			return domain.RequestDefinition{}, clierrors.NewValidationError("timeout", opts.timeout.String(), "non_negative", "timeout must not be negative")
		}
		timeout := opts.timeout
		def.Timeout = &timeout
	}
	if opts.cachePolicy != "" {
		policy, err := request.ParseCachePolicy(opts.cachePolicy)
		if err != nil {
			return domain.RequestDefinition{}, clierrors.NewValidationError("cache-policy", opts.cachePolicy, "supported_values", err.Error())
		}
		def.CachePolicy = &policy
	}

	return def, nil
}

func parseHeaders(raw []string) (map[request.HeaderKey]request.HeaderValue, error) {
	headers := make(map[request.HeaderKey]request.HeaderValue, len(raw))
	for _, h := range raw {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, clierrors.NewValidationError("header", h, "key_value", "header must be in 'Key: Value' form")
		}
		headers[request.HeaderKey(key)] = request.HeaderValue(strings.TrimSpace(value))
	}
	return headers, nil
}

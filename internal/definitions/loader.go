// Package definitions loads named request definitions from YAML files.
package definitions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"courier/internal/domain"
	clierrors "courier/internal/errors"
	"courier/pkg/request"
)

// CurrentVersion is the definitions file version this package reads.
const CurrentVersion = "1"

// File is the on-disk layout of a definitions file.
type File struct {
	Version  string   `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Requests []Entry  `yaml:"requests"`
}

// Defaults apply to every entry that does not override them.
type Defaults struct {
	Timeout     string            `yaml:"timeout"`
	CachePolicy string            `yaml:"cachePolicy"`
	Headers     map[string]string `yaml:"headers"`
}

// Entry is one request in a definitions file.
type Entry struct {
	Name        string            `yaml:"name"`
	Method      string            `yaml:"method"`
	URL         string            `yaml:"url"`
	Headers     map[string]string `yaml:"headers"`
	Body        string            `yaml:"body"`
	ContentType string            `yaml:"contentType"`
	Timeout     string            `yaml:"timeout"`
	CachePolicy string            `yaml:"cachePolicy"`
	Decode      string            `yaml:"decode"`
	RootKey     string            `yaml:"rootKey"`
}

// Loader reads definitions files through the filesystem adapter.
type Loader struct {
	fs     domain.FileSystemAdapter
	logger *slog.Logger
}

// NewLoader creates a definitions loader.
func NewLoader(fs domain.FileSystemAdapter, logger *slog.Logger) *Loader {
	return &Loader{
		fs:     fs,
		logger: logger,
	}
}

// Load reads and validates the definitions file at path. A missing path or a
// directory is a ValidationError.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.RequestDefinition, error) {
	info, err := l.fs.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, clierrors.NewValidationError("path", path, "exists", "definitions file does not exist")
	case err != nil:
		return nil, fmt.Errorf("failed to stat definitions file %s: %w", path, err)
	case info.IsDir():
		return nil, clierrors.NewValidationError("path", path, "file", "definitions path is a directory")
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	defs, err := Parse(data)
	if err != nil {
		return nil, err
	}

	l.logger.DebugContext(ctx, "Loaded request definitions", "path", path, "count", len(defs))
	return defs, nil
}

// Parse decodes and validates a definitions document. Every invalid field is
// reported; the errors are joined into a MultiError.
func Parse(data []byte) ([]domain.RequestDefinition, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, clierrors.NewValidationError("", "", "yaml", fmt.Sprintf("malformed definitions file: %v", err))
	}

	if file.Version != "" && file.Version != CurrentVersion {
		return nil, clierrors.NewValidationError("version", file.Version, "supported_values",
			fmt.Sprintf("unsupported definitions version, expected %q", CurrentVersion))
	}
	if len(file.Requests) == 0 {
		return nil, clierrors.NewValidationError("requests", "", "required", "at least one request is required")
	}

	var errs []error

	defaultTimeout, err := parseTimeout("defaults.timeout", file.Defaults.Timeout)
	errs = append(errs, err)
	defaultPolicy, err := parseCachePolicy("defaults.cachePolicy", file.Defaults.CachePolicy)
	errs = append(errs, err)

	seen := make(map[string]bool, len(file.Requests))
	defs := make([]domain.RequestDefinition, 0, len(file.Requests))

	for i, entry := range file.Requests {
		field := func(name string) string { return fmt.Sprintf("requests[%d].%s", i, name) }

		name := strings.TrimSpace(entry.Name)
		switch {
		case name == "":
			errs = append(errs, clierrors.NewValidationError(field("name"), "", "required", "name is required"))
		case seen[name]:
			errs = append(errs, clierrors.NewValidationError(field("name"), name, "unique", "duplicate request name"))
		}
		seen[name] = true

		method := request.MethodGet
		if entry.Method != "" {
			m, err := request.ParseMethod(entry.Method)
			if err != nil {
				errs = append(errs, clierrors.NewValidationError(field("method"), entry.Method, "supported_values", "unknown HTTP method"))
			}
			method = m
		}

		u, err := ParseURL(entry.URL)
		if err != nil {
			errs = append(errs, clierrors.NewValidationError(field("url"), entry.URL, "http_url", err.Error()))
		}

		decoder := domain.DecodeJSON
		if entry.Decode != "" {
			decoder = domain.Decoder(strings.ToLower(entry.Decode))
			if !decoder.Valid() {
				errs = append(errs, clierrors.NewValidationError(field("decode"), entry.Decode, "supported_values", "unknown decoder"))
			}
		}

		timeout := defaultTimeout
		if entry.Timeout != "" {
			timeout, err = parseTimeout(field("timeout"), entry.Timeout)
			errs = append(errs, err)
		}

		policy := defaultPolicy
		if entry.CachePolicy != "" {
			policy, err = parseCachePolicy(field("cachePolicy"), entry.CachePolicy)
			errs = append(errs, err)
		}

		headers := make(map[request.HeaderKey]request.HeaderValue, len(file.Defaults.Headers)+len(entry.Headers))
		for k, v := range file.Defaults.Headers {
			headers[request.HeaderKey(k)] = request.HeaderValue(v)
		}
		for k, v := range entry.Headers {
			headers[request.HeaderKey(k)] = request.HeaderValue(v)
		}

		def := domain.RequestDefinition{
			Name:        name,
			Method:      method,
			URL:         u,
			Headers:     headers,
			ContentType: request.HeaderValue(entry.ContentType),
			CachePolicy: policy,
			Timeout:     timeout,
			Decode:      decoder,
			RootKey:     entry.RootKey,
		}
		if entry.Body != "" {
			def.Body = []byte(entry.Body)
		}
		defs = append(defs, def)
	}

	if err := clierrors.Join(errs...); err != nil {
		return nil, err
	}
	return defs, nil
}

// ParseURL parses an absolute http or https URL.
func ParseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url scheme must be http or https, got %s", strconv.Quote(u.Scheme))
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url has no host")
	}
	return u, nil
}

func parseTimeout(field, raw string) (*time.Duration, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return nil, clierrors.NewValidationError(field, raw, "duration", "must be a non-negative duration such as 30s")
	}
	return &d, nil
}

func parseCachePolicy(field, raw string) (*request.CachePolicy, error) {
	if raw == "" {
		return nil, nil
	}
	p, err := request.ParseCachePolicy(raw)
	if err != nil {
		return nil, clierrors.NewValidationError(field, raw, "supported_values", "unknown cache policy")
	}
	return &p, nil
}

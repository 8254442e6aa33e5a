// Package filter selects which named requests a run sends.
package filter

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"courier/internal/domain"
)

// ExcludeFilter skips requests whose name matches any exclude pattern.
type ExcludeFilter struct {
	patterns []*regexp.Regexp
	logger   *slog.Logger
}

// NewExcludeFilter creates a new exclude filter with the given patterns.
func NewExcludeFilter(patterns []string, logger *slog.Logger) (*ExcludeFilter, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no patterns provided for exclude filter")
	}

	compiledPatterns := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		compiledPatterns = append(compiledPatterns, compiled)
	}

	return &ExcludeFilter{
		patterns: compiledPatterns,
		logger:   logger,
	}, nil
}

// New returns an ExcludeFilter for patterns, or a NoOpFilter when there are none.
func New(patterns []string, logger *slog.Logger) (domain.RequestFilter, error) {
	if len(patterns) == 0 {
		return NewNoOpFilter(), nil
	}
	return NewExcludeFilter(patterns, logger)
}

// ShouldExclude returns true if the request name matches any exclude pattern.
func (f *ExcludeFilter) ShouldExclude(name string) bool {
	for _, pattern := range f.patterns {
		if pattern.MatchString(name) {
			f.logger.Debug("Request excluded",
				"name", name,
				"pattern", pattern.String())
			return true
		}
	}
	return false
}

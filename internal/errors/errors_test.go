package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError(t *testing.T) {
	cause := errors.New("server said no")
	err := NewHTTPError(404, "GET", "https://api.example.com/items", "item not found", cause)

	assert.Equal(t, "GET https://api.example.com/items: HTTP 404: item not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)

	bare := NewHTTPError(500, "POST", "https://api.example.com/items", "", nil)
	assert.Equal(t, "POST https://api.example.com/items: HTTP 500", bare.Error())
}

func TestHTTPErrorStatusCategories(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusGone, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusBadGateway, ErrServer},
		{http.StatusServiceUnavailable, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			err := NewHTTPError(tt.statusCode, "GET", "/test", "", nil)
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	conflict := NewHTTPError(http.StatusConflict, "GET", "/test", "", nil)
	for _, category := range []error{ErrNotFound, ErrUnauthorized, ErrInvalidInput, ErrServer, ErrNetwork} {
		assert.NotErrorIs(t, conflict, category)
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewNetworkError("GET", "https://api.example.com", "no_internet_connection", cause)

	assert.Equal(t, "GET https://api.example.com: no response (no_internet_connection)", err.Error())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("parse failure")
	err := NewConfigurationError("timeout", "abc", "invalid duration", cause)

	assert.Equal(t, "config timeout: invalid duration", err.Error())
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "config: unreadable", NewConfigurationError("", "", "unreadable", nil).Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("url", "ftp://x", "scheme", "must be http or https")

	assert.Equal(t, "invalid url: must be http or https", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: bad input", NewValidationError("", "", "", "bad input").Error())
}

func TestMultiError(t *testing.T) {
	first := errors.New("first")
	notFound := NewHTTPError(404, "GET", "/a", "", nil)
	multi := NewMultiError([]error{first, nil, notFound})

	require.Len(t, multi.Errors, 2)
	assert.Equal(t, "2 failures, first: first", multi.Error())
	assert.ErrorIs(t, multi, first)
	assert.ErrorIs(t, multi, ErrNotFound)
	assert.NotErrorIs(t, multi, ErrNetwork)

	var httpErr *HTTPError
	require.ErrorAs(t, multi, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)

	assert.Equal(t, "no errors", NewMultiError(nil).Error())
	assert.Equal(t, "only", NewMultiError([]error{errors.New("only")}).Error())
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join())
	assert.NoError(t, Join(nil, nil))

	single := errors.New("single")
	assert.Same(t, single, Join(nil, single))

	joined := Join(errors.New("a"), errors.New("b"))
	var multi *MultiError
	require.ErrorAs(t, joined, &multi)
	assert.Len(t, multi.Errors, 2)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitOK},
		{name: "plain", err: errors.New("boom"), expected: ExitFailure},
		{name: "validation", err: NewValidationError("url", "", "", "bad"), expected: ExitUsage},
		{name: "configuration", err: NewConfigurationError("timeout", "x", "bad", nil), expected: ExitConfiguration},
		{name: "network", err: NewNetworkError("GET", "/", "timed_out", nil), expected: ExitNetwork},
		{name: "unauthorized", err: NewHTTPError(401, "GET", "/", "", nil), expected: ExitUnauthorized},
		{name: "not found", err: NewHTTPError(404, "GET", "/", "", nil), expected: ExitNotFound},
		{name: "server", err: NewHTTPError(502, "GET", "/", "", nil), expected: ExitServer},
		{name: "other status", err: NewHTTPError(409, "GET", "/", "", nil), expected: ExitFailure},
		{name: "wrapped", err: fmt.Errorf("exec: %w", NewHTTPError(404, "GET", "/", "", nil)), expected: ExitNotFound},
		{
			name:     "mixed run",
			err:      NewMultiError([]error{NewHTTPError(503, "GET", "/", "", nil), NewNetworkError("GET", "/", "timed_out", nil)}),
			expected: ExitNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

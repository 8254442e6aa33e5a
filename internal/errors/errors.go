// Package errors provides the error types the courier CLI reports to users.
//
// The request library returns its own typed failures; this package wraps
// them with the context a command has (which definition, which URL) and
// gives them stable categories for exit codes and summaries.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Categories. Each typed error in this package matches at most one of them.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNetwork       = errors.New("network failure")
	ErrServer        = errors.New("server failure")
	ErrConfiguration = errors.New("bad configuration")
)

// Process exit statuses.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitConfiguration = 3
	ExitNetwork       = 4
	ExitUnauthorized  = 5
	ExitNotFound      = 6
	ExitServer        = 7
)

// Earlier rows win when an error carries several categories.
var exitCodes = []struct {
	category error
	code     int
}{
	{ErrConfiguration, ExitConfiguration},
	{ErrInvalidInput, ExitUsage},
	{ErrNetwork, ExitNetwork},
	{ErrUnauthorized, ExitUnauthorized},
	{ErrNotFound, ExitNotFound},
	{ErrServer, ExitServer},
}

// ExitCode maps err to the status the courier binary exits with.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, row := range exitCodes {
		if errors.Is(err, row.category) {
			return row.code
		}
	}
	return ExitFailure
}

// NetworkError is a request that ended without any HTTP response.
type NetworkError struct {
	Method string
	URL    string
	Code   string
	Err    error
}

// NewNetworkError reports a failed request; code is the transport error code.
func NewNetworkError(method, url, code string, err error) *NetworkError {
	return &NetworkError{Method: method, URL: url, Code: code, Err: err}
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: no response (%s)", e.Method, e.URL, e.Code)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// HTTPError is a response with a non-2xx status. Message holds the start of
// the response body.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Err        error
}

// NewHTTPError reports a response with an error status.
func NewHTTPError(statusCode int, method, url, message string, err error) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Method: method, URL: url, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *HTTPError) Unwrap() error { return e.Err }

// Is places the status in a category: 404 and 410 are ErrNotFound, 401 and
// 403 are ErrUnauthorized, 5xx is ErrServer. Other statuses have none.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return target == ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return target == ErrUnauthorized
	}
	return e.StatusCode >= http.StatusInternalServerError && target == ErrServer
}

// ConfigurationError is a bad setting from a config file, env file or the
// environment. Value is the raw setting.
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

// NewConfigurationError reports a bad setting.
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Message: message, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError is bad user input: a flag, a definitions file entry or a
// request that cannot be sent. Rule names the check that failed.
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

// NewValidationError reports bad input.
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Rule: rule, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// MultiError collects the failures of several independent operations.
type MultiError struct {
	Errors []error
}

// NewMultiError drops nil entries from errs.
func NewMultiError(errs []error) *MultiError {
	m := &MultiError{}
	for _, err := range errs {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d failures, first: %v", len(e.Errors), e.Errors[0])
}

func (e *MultiError) Unwrap() []error { return e.Errors }

// Join returns nil for no errors, the error itself for one, and a MultiError
// otherwise.
func Join(errs ...error) error {
	m := NewMultiError(errs)
	switch len(m.Errors) {
	case 0:
		return nil
	case 1:
		return m.Errors[0]
	}
	return m
}

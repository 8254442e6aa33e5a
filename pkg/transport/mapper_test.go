package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func httpResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Header: http.Header{"Content-Type": []string{"application/json"}}}
}

func TestMap_StatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		success    bool
		expectCode Code
	}{
		{name: "200 is success", status: http.StatusOK, success: true},
		{name: "204 is success", status: http.StatusNoContent, success: true},
		{name: "301 is redirection", status: http.StatusMovedPermanently, expectCode: Redirection},
		{name: "404 is client error", status: http.StatusNotFound, expectCode: ClientError},
		{name: "503 is server error", status: http.StatusServiceUnavailable, expectCode: ServerError},
		{name: "199 is unknown", status: 199, expectCode: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"ok":true}`)
			result := Map(Outcome{Body: body, Response: httpResponse(tt.status)})

			if tt.success {
				require.NotNil(t, result.Success)
				assert.Nil(t, result.Failure)
				assert.Equal(t, tt.status, result.Success.StatusCode())
				assert.Equal(t, body, result.Success.Body())
				return
			}

			require.NotNil(t, result.Failure)
			assert.Nil(t, result.Success)
			assert.Equal(t, tt.expectCode, result.Failure.Err.Code)
			assert.Equal(t, tt.status, result.Failure.Err.StatusCode)
			require.NotNil(t, result.Failure.Response)
			assert.Equal(t, body, result.Failure.Response.Body)
		})
	}
}

func TestMap_StatusWinsOverTransportError(t *testing.T) {
	result := Map(Outcome{
		Response: httpResponse(http.StatusOK),
		Err:      errors.New("connection reset after headers"),
	})

	require.True(t, result.IsSuccess())
	assert.True(t, result.Success.Response.IsEmpty())
}

func TestMap_NoStatusTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
		sentinel error
	}{
		{name: "context cancelled", err: fmt.Errorf("do: %w", context.Canceled), expected: Cancelled, sentinel: ErrCancelled},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: TimedOut, sentinel: ErrTimedOut},
		{name: "net timeout", err: &net.OpError{Op: "read", Err: timeoutError{}}, expected: TimedOut, sentinel: ErrTimedOut},
		{name: "dns failure", err: &net.DNSError{Err: "no such host", Name: "example.invalid"}, expected: NoInternetConnection, sentinel: ErrNoInternetConnection},
		{
			name:     "connection refused",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			expected: NoInternetConnection,
			sentinel: ErrNoInternetConnection,
		},
		{name: "network unreachable", err: syscall.ENETUNREACH, expected: NoInternetConnection, sentinel: ErrNoInternetConnection},
		{name: "other", err: errors.New("tls: bad certificate"), expected: Unknown},
		{name: "nil error", err: nil, expected: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Map(Outcome{Err: tt.err})

			require.NotNil(t, result.Failure)
			assert.Nil(t, result.Failure.Response)
			assert.Equal(t, tt.expected, result.Failure.Err.Code)
			assert.Zero(t, result.Failure.Err.StatusCode)
			if tt.sentinel != nil {
				assert.ErrorIs(t, result.Failure, tt.sentinel)
			}
			if tt.err != nil {
				assert.ErrorIs(t, result.Failure, tt.err)
			}
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	_, ok := CodeForStatus(299)
	assert.True(t, ok)

	code, ok := CodeForStatus(600)
	assert.False(t, ok)
	assert.Equal(t, Unknown, code)
}

func TestError_Equal(t *testing.T) {
	a := Error{Code: ServerError, StatusCode: 503, Underlying: errors.New("x")}
	b := NewStatusError(ServerError, 503)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewStatusError(ServerError, 502)))
	assert.Equal(t, "transport error server_error (HTTP 503)", b.Error())
}

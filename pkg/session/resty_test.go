package session

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/testutil"
	"courier/pkg/transport"
)

func runTask(t *testing.T, s *Resty, req *http.Request) transport.Outcome {
	t.Helper()
	done := make(chan transport.Outcome, 1)
	task := s.DataTask(req, func(out transport.Outcome) { done <- out })
	task.Resume()

	select {
	case out := <-done:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("data task did not complete")
		return transport.Outcome{}
	}
}

func TestResty_GetReturnsBodyAndResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "courier-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"a","subtitle":"b"}`))
	}))
	defer server.Close()

	s := NewResty(WithLogger(testutil.Logger()), WithUserAgent("courier-test"))
	req, err := http.NewRequest(http.MethodGet, server.URL+"/obj", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")

	out := runTask(t, s, req)

	require.NoError(t, out.Err)
	require.NotNil(t, out.Response)
	assert.Equal(t, http.StatusOK, out.Response.StatusCode)
	assert.JSONEq(t, `{"title":"a","subtitle":"b"}`, string(out.Body))
	assert.True(t, transport.Map(out).IsSuccess())
}

func TestResty_PostSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	s := NewResty()
	req, err := http.NewRequest(http.MethodPost, server.URL, bytes.NewReader([]byte(`{"a":1}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	out := runTask(t, s, req)

	require.NoError(t, out.Err)
	assert.Equal(t, http.StatusCreated, out.Response.StatusCode)
	assert.Equal(t, `{"a":1}`, string(out.Body))
}

func TestResty_ServerErrorKeepsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	result := transport.Map(runTask(t, NewResty(), req))

	require.NotNil(t, result.Failure)
	assert.Equal(t, transport.ServerError, result.Failure.Err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, result.Failure.Err.StatusCode)
	require.NotNil(t, result.Failure.Response)
	assert.True(t, result.Failure.Response.IsEmpty())
}

func TestResty_ConnectionRefusedIsNoInternetConnection(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	req, err := http.NewRequest(http.MethodGet, addr, nil)
	require.NoError(t, err)

	out := runTask(t, NewResty(), req)
	result := transport.Map(out)

	require.Nil(t, out.Response)
	require.NotNil(t, result.Failure)
	assert.Nil(t, result.Failure.Response)
	assert.Equal(t, transport.NoInternetConnection, result.Failure.Err.Code)
}

func TestResty_CancelStopsInFlightRequest(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	done := make(chan transport.Outcome, 1)
	task := NewResty().DataTask(req, func(out transport.Outcome) { done <- out })
	task.Resume()
	task.Cancel()

	select {
	case out := <-done:
		assert.Equal(t, transport.Cancelled, transport.Map(out).Failure.Err.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled task did not complete")
	}
}

func TestResty_RequestDeadlineIsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	result := transport.Map(runTask(t, NewResty(), req))

	require.NotNil(t, result.Failure)
	assert.Equal(t, transport.TimedOut, result.Failure.Err.Code)
}

func TestResty_RateLimitAllowsBurst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	s := NewResty(WithRateLimit(1000, 5))
	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		out := runTask(t, s, req)
		require.NoError(t, out.Err)
		assert.Equal(t, http.StatusNoContent, out.Response.StatusCode)
	}

	assert.Nil(t, NewResty(WithRateLimit(0, 0)).limiter)
}

package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
)

// Map classifies a raw session outcome. When a status code is present it alone
// decides the result; the transport error is ignored. Without a status code the
// platform error is mapped onto the fixed taxonomy and the failure carries no
// response.
func Map(outcome Outcome) Result {
	if outcome.Response == nil {
		return Failed(NewFailure(errorFor(outcome.Err), nil))
	}

	resp := Response{
		StatusCode: outcome.Response.StatusCode,
		Header:     outcome.Response.Header,
		Body:       outcome.Body,
		Raw:        outcome.Response,
	}
	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	code, ok := CodeForStatus(resp.StatusCode)
	if ok {
		return Succeeded(NewSuccess(resp))
	}
	return Failed(NewFailure(NewStatusError(code, resp.StatusCode), &resp))
}

// CodeForStatus maps an HTTP status code to a failure code. The boolean is true
// for 2xx statuses, in which case the code is meaningless.
func CodeForStatus(statusCode int) (Code, bool) {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return Unknown, true
	case statusCode >= 300 && statusCode < 400:
		return Redirection, false
	case statusCode >= 400 && statusCode < 500:
		return ClientError, false
	case statusCode >= 500 && statusCode < 600:
		return ServerError, false
	default:
		return Unknown, false
	}
}

// errorFor maps a platform error received without a status code.
func errorFor(err error) Error {
	return Error{Code: codeFor(err), Underlying: err}
}

func codeFor(err error) Code {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCancelled) {
		return Cancelled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimedOut) {
		return TimedOut
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimedOut
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NoInternetConnection
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, ErrNoInternetConnection) {
		return NoInternetConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return NoInternetConnection
	}

	return Unknown
}

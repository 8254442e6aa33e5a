package transport

import (
	"fmt"
	"net/http"
)

// Outcome is the raw tuple a Session hands back when a data task finishes.
// Any of the fields may be empty.
type Outcome struct {
	Body     []byte
	Response *http.Response
	Err      error
}

// Response is an HTTP response as seen by the transport: status code,
// headers, the fully read body and the underlying platform response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Raw        *http.Response
}

// NewResponse creates a response with the given status and body.
func NewResponse(statusCode int, body []byte) Response {
	return Response{StatusCode: statusCode, Header: http.Header{}, Body: body}
}

// IsEmpty reports whether the body is absent or zero-length.
func (r Response) IsEmpty() bool {
	return len(r.Body) == 0
}

// Success is a transport call that produced a 2xx status.
type Success struct {
	Response Response
}

// NewSuccess wraps a response as a transport success.
func NewSuccess(resp Response) Success {
	return Success{Response: resp}
}

// Body returns the response body, which may be nil.
func (s Success) Body() []byte {
	return s.Response.Body
}

// StatusCode returns the response status code.
func (s Success) StatusCode() int {
	return s.Response.StatusCode
}

// Failure is a transport call that did not succeed. Response is nil when no
// status code was received.
type Failure struct {
	Err      Error
	Response *Response
}

// NewFailure creates a failure with an optional response.
func NewFailure(err Error, resp *Response) *Failure {
	return &Failure{Err: err, Response: resp}
}

func (f *Failure) Error() string {
	if f.Response != nil {
		return fmt.Sprintf("%s: %d bytes received", f.Err.Error(), len(f.Response.Body))
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one transport call after classification. Exactly
// one of Success or Failure is set.
type Result struct {
	Success *Success
	Failure *Failure
}

// Succeeded creates a successful result.
func Succeeded(s Success) Result {
	return Result{Success: &s}
}

// Failed creates a failed result.
func Failed(f *Failure) Result {
	return Result{Failure: f}
}

// IsSuccess reports whether the result holds a success.
func (r Result) IsSuccess() bool {
	return r.Success != nil
}

package commands

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"courier/internal/domain"
	clierrors "courier/internal/errors"
	"courier/pkg/backend"
	"courier/pkg/request"
	"courier/pkg/transport"
)

// Outcome labels how a request ended.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

const maxErrorBody = 256

// Summary describes one finished request.
type Summary struct {
	Name     string  `json:"name" yaml:"name"`
	Method   string  `json:"method" yaml:"method"`
	URL      string  `json:"url" yaml:"url"`
	Status   int     `json:"status,omitempty" yaml:"status,omitempty"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Duration string  `json:"duration" yaml:"duration"`
	Value    any     `json:"value,omitempty" yaml:"value,omitempty"`

	err error
}

// Err returns the classified error, or nil on success.
func (s Summary) Err() error { return s.err }

func summarize(def domain.RequestDefinition, reply Reply, err error, elapsed time.Duration) Summary {
	s := Summary{
		Name:     def.Name,
		Method:   string(def.Method),
		Duration: elapsed.Round(time.Millisecond).String(),
	}
	if def.URL != nil {
		s.URL = def.URL.String()
	}

	if err == nil {
		s.Outcome = OutcomeSuccess
		s.Status = reply.Status
		s.Value = reply.Value
		return s
	}

	s.err = classify(def, err)
	s.Error = s.err.Error()
	s.Outcome = OutcomeFailed
	if errors.Is(err, transport.ErrCancelled) {
		s.Outcome = OutcomeCancelled
	}
	if be, ok := backend.AsError(err); ok {
		s.Status = be.StatusCode()
	}
	return s
}

// classify converts request errors into CLI errors: non-2xx responses
// become HTTPErrors and responseless failures become NetworkErrors.
func classify(def domain.RequestDefinition, err error) error {
	method := string(def.Method)
	url := ""
	if def.URL != nil {
		url = def.URL.String()
	}

	be, ok := backend.AsError(err)
	if !ok {
		if errors.Is(err, request.ErrInvalidRequest) {
			return clierrors.NewValidationError("request", def.Name, "valid_request", err.Error())
		}
		return err
	}

	switch {
	case be.Kind == backend.NetworkError && be.Response != nil:
		return clierrors.NewHTTPError(be.StatusCode(), method, url, bodySnippet(be.Response.Body), err)
	case be.Kind == backend.NetworkError:
		return clierrors.NewNetworkError(method, url, be.Transport.Code.String(), err)
	default:
		return fmt.Errorf("%s %s: failed to decode response: %w", method, url, err)
	}
}

// bodySnippet cuts long bodies on a rune boundary.
func bodySnippet(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}

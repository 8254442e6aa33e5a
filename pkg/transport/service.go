package transport

import (
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// Completion receives the classified result of one request.
type Completion func(Result)

type entry struct {
	id         uuid.UUID
	task       DataTask
	completion Completion
}

// Service executes requests on a Session and keeps a registry of in-flight
// tasks so they can be cancelled individually or all at once.
//
// Completion and cancellation race for the registry entry under a mutex and
// only the side that removes the entry delivers. If cancellation wins, the
// caller receives exactly one Cancelled failure and the late transport result
// is dropped. If completion wins, cancellation has no effect.
type Service struct {
	session Session
	logger  *slog.Logger

	mu     sync.Mutex
	tasks  map[Key]map[uuid.UUID]*entry
	closed bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for registry events.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a transport service on top of the given session.
func NewService(session Session, opts ...ServiceOption) *Service {
	s := &Service{
		session: session,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tasks:   make(map[Key]map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute submits the request and registers it until it completes or is
// cancelled. It returns the request's identity, which can be passed to Cancel.
// Once the service is closed, Execute completes immediately with a Cancelled
// failure.
func (s *Service) Execute(req *http.Request, completion Completion) Key {
	key := KeyFor(req)
	id := uuid.New()

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.logger.Debug("Rejecting request on closed transport service",
			"method", req.Method,
			"url", req.URL.String())
		completion(cancelledResult())
		return key
	}

	task := s.session.DataTask(req, func(outcome Outcome) {
		s.finish(key, id, Map(outcome))
	})

	e := &entry{id: id, task: task, completion: completion}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		completion(cancelledResult())
		return key
	}
	if s.tasks[key] == nil {
		s.tasks[key] = make(map[uuid.UUID]*entry)
	}
	s.tasks[key][id] = e
	s.mu.Unlock()

	s.logger.Debug("Registered task",
		"method", req.Method,
		"url", req.URL.String(),
		"key", key.Short(),
		"task", id.String())

	task.Resume()
	return key
}

// CancelTask cancels every in-flight task registered for a request equal to req.
func (s *Service) CancelTask(req *http.Request) {
	s.Cancel(KeyFor(req))
}

// Cancel cancels every in-flight task registered under key. Keys with nothing
// registered are ignored.
func (s *Service) Cancel(key Key) {
	s.mu.Lock()
	entries := s.tasks[key]
	delete(s.tasks, key)
	s.mu.Unlock()

	for _, e := range entries {
		s.cancelEntry(key, e)
	}
}

// CancelAllTasks cancels every registered task and clears the registry.
func (s *Service) CancelAllTasks() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = make(map[Key]map[uuid.UUID]*entry)
	s.mu.Unlock()

	for key, entries := range tasks {
		for _, e := range entries {
			s.cancelEntry(key, e)
		}
	}
}

// Close cancels all registered tasks and rejects further requests.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.CancelAllTasks()
}

// Pending returns the number of registered tasks.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, entries := range s.tasks {
		n += len(entries)
	}
	return n
}

func (s *Service) cancelEntry(key Key, e *entry) {
	s.logger.Debug("Cancelling task", "key", key.Short(), "task", e.id.String())
	e.task.Cancel()
	e.completion(cancelledResult())
}

func (s *Service) finish(key Key, id uuid.UUID, result Result) {
	s.mu.Lock()
	e, ok := s.tasks[key][id]
	if ok {
		delete(s.tasks[key], id)
		if len(s.tasks[key]) == 0 {
			delete(s.tasks, key)
		}
	}
	s.mu.Unlock()

	if !ok {
		s.logger.Debug("Dropping result of cancelled task", "key", key.Short(), "task", id.String())
		return
	}

	if result.Failure != nil {
		s.logger.Debug("Task failed", "key", key.Short(), "task", id.String(), "code", result.Failure.Err.Code.String())
	} else {
		s.logger.Debug("Task succeeded", "key", key.Short(), "task", id.String(), "status", result.Success.StatusCode())
	}
	e.completion(result)
}

func cancelledResult() Result {
	return Failed(NewFailure(NewError(Cancelled), nil))
}

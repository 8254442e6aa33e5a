package transport

import "net/http"

// Session is the minimal capability consumed from the platform HTTP stack:
// create a task for a request, start it, cancel it. Implementations must not
// invoke completion before Resume is called, and must invoke it at most once.
type Session interface {
	DataTask(req *http.Request, completion func(Outcome)) DataTask
}

// DataTask is a single submitted request.
type DataTask interface {
	Resume()
	Cancel()
}

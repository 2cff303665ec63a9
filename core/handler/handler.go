package handler

import (
	"net/http"

	"github.com/yonasBSD/Rocket/core/outcome"
)

// Forwarded is the payload of a forward: the unconsumed request body and the
// status to report if no remaining route accepts the request.
type Forwarded struct {
	Data   *Data
	Status int
}

// Outcome is the result of a route handler.
type Outcome = outcome.Outcome[*Response, int, Forwarded]

// Success completes the request with resp.
func Success(resp *Response) Outcome {
	return outcome.Success[*Response, int, Forwarded](resp)
}

// Error fails the request with status; a catcher renders the response.
func Error(status int) Outcome {
	return outcome.Error[*Response, int, Forwarded](status)
}

// Forward declines the request and hands data to the next matching route.
// If no route remains, status is reported through the catchers.
func Forward(data *Data, status int) Outcome {
	return outcome.Forward[*Response, int](Forwarded{Data: data, Status: status})
}

// NotFound forwards with http.StatusNotFound, the usual "not mine" answer.
func NotFound(data *Data) Outcome {
	return Forward(data, http.StatusNotFound)
}

// Handler handles requests routed to it.
// Implementations may block and may panic; the engine contains both.
type Handler interface {
	Handle(req *Request, data *Data) Outcome
}

// Func adapts an ordinary function to the Handler interface.
type Func func(req *Request, data *Data) Outcome

// Handle calls f(req, data).
func (f Func) Handle(req *Request, data *Data) Outcome {
	return f(req, data)
}

// ErrorHandler produces the response for a failed request.
// A returned error or nil response marks the catcher as failed.
type ErrorHandler interface {
	HandleError(status int, req *Request) (*Response, error)
}

// ErrorHandlerFunc adapts an ordinary function to the ErrorHandler interface.
type ErrorHandlerFunc func(status int, req *Request) (*Response, error)

// HandleError calls f(status, req).
func (f ErrorHandlerFunc) HandleError(status int, req *Request) (*Response, error) {
	return f(status, req)
}

// IoHandler takes over the connection after a protocol upgrade was negotiated.
// header holds the response headers to send with the switch, minus the
// hop-by-hop Connection and Upgrade headers, which the handler writes itself.
type IoHandler interface {
	ServeIO(w http.ResponseWriter, r *http.Request, header http.Header) error
}

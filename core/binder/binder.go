package binder

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Binder decodes part of a request into v.
type Binder func(req *handler.Request, data *handler.Data, v any) error

// Validator is implemented by bind targets that check themselves once all
// binders ran.
type Validator interface {
	Validate() error
}

// Bind runs binders in order against v, then validates v when it
// implements Validator.
func Bind(req *handler.Request, data *handler.Data, v any, binders ...Binder) error {
	for _, b := range binders {
		if err := b(req, data, v); err != nil {
			return err
		}
	}
	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// Status maps a binding error to the HTTP status a route should fail with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnsupportedMediaType), errors.Is(err, ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidTarget):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Handler returns a handler that binds a fresh T with binders and passes it
// to fn. A request whose body is in a format the binders do not decode is
// forwarded with 415, so a route for another format can take it. Any other
// binding failure fails the request with Status(err).
func Handler[T any](fn func(req *handler.Request, v *T) handler.Outcome, binders ...Binder) handler.Handler {
	return handler.Func(func(req *handler.Request, data *handler.Data) handler.Outcome {
		v := new(T)
		if err := Bind(req, data, v, binders...); err != nil {
			status := Status(err)
			if status == http.StatusUnsupportedMediaType {
				return handler.Forward(data, status)
			}
			return handler.Error(status)
		}
		return fn(req, v)
	})
}

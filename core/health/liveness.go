package health

import (
	"net/http"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Liveness answers "ALIVE" with 200 OK. No dependency checks.
func Liveness() handler.Handler {
	return handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
		return handler.Success(handler.Text(http.StatusOK, "ALIVE"))
	})
}

// NoContent answers 204 without a body. Ideal for high-frequency checks.
func NoContent() handler.Handler {
	return handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
		return handler.Success(handler.NewResponse(http.StatusNoContent))
	})
}

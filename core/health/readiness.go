package health

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
	"github.com/yonasBSD/Rocket/core/router"
)

// Check reports whether a dependency is available.
type Check func(ctx context.Context) error

// Readiness answers "READY" when every check passes. A failing check is
// logged and the request fails with 503, leaving the response to the 503
// catcher.
func Readiness(log *slog.Logger, checks ...Check) handler.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
		g, ctx := errgroup.WithContext(req.Context())
		for _, check := range checks {
			g.Go(func() error { return check(ctx) })
		}
		if err := g.Wait(); err != nil {
			log.ErrorContext(req.Context(), "readiness check failed",
				logger.Error(err), logger.RequestID(req.ID()))
			return handler.Error(http.StatusServiceUnavailable)
		}
		return handler.Success(handler.Text(http.StatusOK, "READY"))
	})
}

// Routes returns GET /live and GET /ready, to be mounted under a base such
// as "/health".
func Routes(log *slog.Logger, checks ...Check) []*router.Route {
	return []*router.Route{
		router.Get("/live", Liveness(), router.WithName("health.live")),
		router.Get("/ready", Readiness(log, checks...), router.WithName("health.ready")),
	}
}

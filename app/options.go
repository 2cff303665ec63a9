package app

import (
	"log/slog"

	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/dispatch"
	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/router"
	"github.com/yonasBSD/Rocket/core/server"
)

func WithLogger(log *slog.Logger) Option {
	return func(app *App) error {
		if log == nil {
			return ErrNilOption
		}
		app.logger = log
		return nil
	}
}

func WithRouter(r *router.Router) Option {
	return func(app *App) error {
		if r == nil {
			return ErrNilOption
		}
		app.router = r
		return nil
	}
}

func WithFairings(fs *fairing.Fairings) Option {
	return func(app *App) error {
		if fs == nil {
			return ErrNilOption
		}
		app.fairings = fs
		return nil
	}
}

// WithServer replaces the configured server. The server must be given the
// app's fairings itself to run liftoff and shutdown hooks.
func WithServer(s *server.Server) Option {
	return func(app *App) error {
		if s == nil {
			return ErrNilOption
		}
		app.server = s
		return nil
	}
}

func WithCookieManager(m *cookie.Manager) Option {
	return func(app *App) error {
		if m == nil {
			return ErrNilOption
		}
		app.cookies = m
		return nil
	}
}

// WithEngineOptions adds options applied after the configured ones when the
// engine is built.
func WithEngineOptions(opts ...dispatch.Option) Option {
	return func(app *App) error {
		app.engineOpts = append(app.engineOpts, opts...)
		return nil
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yonasBSD/Rocket/core/config"
	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/dispatch"
	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/logger"
	"github.com/yonasBSD/Rocket/core/router"
	"github.com/yonasBSD/Rocket/core/server"
	"github.com/yonasBSD/Rocket/fairings"
)

// App wires the router, fairings, cookie manager, dispatch engine, and server
// of one application. Routes and fairings are registered before Run; the
// engine is built on first use and the router is frozen from then on.
type App struct {
	config   Config
	router   *router.Router
	fairings *fairing.Fairings
	cookies  *cookie.Manager
	server   *server.Server
	logger   *slog.Logger

	engineOnce sync.Once
	engine     *dispatch.Engine
	engineOpts []dispatch.Option
}

// Option configures an App.
type Option func(*App) error

// New loads Config from the environment and builds an App from it.
func New(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds an App from cfg. Components given as options replace
// the ones cfg would produce.
func NewFromConfig(cfg Config, opts ...Option) (*App, error) {
	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		log, err := newLogger(cfg)
		if err != nil {
			return nil, err
		}
		app.logger = log
	}

	if app.router == nil {
		app.router = router.New()
	}

	if app.fairings == nil {
		app.fairings = fairing.New(fairing.WithLogger(app.logger))
	}
	if cfg.RequestLogging {
		app.fairings.Attach(fairings.Logging(app.logger))
	}
	if cfg.Shield {
		shield := fairings.DevelopmentShield
		if cfg.Env == EnvProduction || cfg.Env == EnvStaging {
			shield = fairings.BalancedShield
		}
		app.fairings.Attach(fairings.ShieldWithConfig(shield))
	}

	if app.cookies == nil {
		cm, err := cookie.NewFromConfig(cfg.Cookie)
		if err != nil {
			return nil, fmt.Errorf("app: cookie manager: %w", err)
		}
		app.cookies = cm
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server,
			server.WithLogger(app.logger),
			server.WithFairings(app.fairings),
		)
		if err != nil {
			return nil, fmt.Errorf("app: server: %w", err)
		}
		app.server = s
	}

	return app, nil
}

func newLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	var preset logger.Option
	switch cfg.Env {
	case EnvDevelopment, "":
		preset = logger.WithDevelopment(cfg.AppName)
	case EnvStaging:
		preset = logger.WithStaging(cfg.AppName)
	case EnvProduction:
		preset = logger.WithProduction(cfg.AppName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEnv, cfg.Env)
	}

	return logger.New(preset, logger.WithLevel(level)), nil
}

// Mount registers routes under base.
func (a *App) Mount(base string, routes ...*router.Route) *App {
	a.router.Mount(base, routes...)
	return a
}

// Register registers catchers under base.
func (a *App) Register(base string, catchers ...*router.Catcher) *App {
	a.router.Register(base, catchers...)
	return a
}

// Attach attaches fairings. Attach after the engine was built still works
// for liftoff and shutdown fairings; request and response fairings apply
// from the next request on.
func (a *App) Attach(fs ...fairing.Fairing) *App {
	a.fairings.Attach(fs...)
	return a
}

func (a *App) Config() Config { return a.config }
func (a *App) Logger() *slog.Logger { return a.logger }
func (a *App) Router() *router.Router { return a.router }
func (a *App) Fairings() *fairing.Fairings { return a.fairings }
func (a *App) Cookies() *cookie.Manager { return a.cookies }
func (a *App) Server() *server.Server { return a.server }
func (a *App) Handler() http.Handler { return a.Engine() }

// Engine returns the dispatch engine, building it on first call. Building
// finalizes the router.
func (a *App) Engine() *dispatch.Engine {
	a.engineOnce.Do(func() {
		opts := append([]dispatch.Option{
			dispatch.WithLogger(a.logger),
			dispatch.WithFairings(a.fairings),
			dispatch.WithCookieManager(a.cookies),
		}, a.engineOpts...)
		a.engine = dispatch.NewFromConfig(a.router, a.config.Engine, opts...)
	})
	return a.engine
}

// Run serves the application until ctx is canceled, then shuts down
// gracefully. Additional run functions, such as background workers, share
// the server's lifetime: the first one to fail stops everything.
func (a *App) Run(ctx context.Context, extra ...func(context.Context) error) error {
	engine := a.Engine()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, engine))
	for _, fn := range extra {
		g.Go(func() error { return fn(gctx) })
	}

	a.logger.InfoContext(ctx, "launching",
		logger.Count("routes", len(a.router.Routes())),
		logger.Count("catchers", len(a.router.Catchers())),
		logger.Count("fairings", a.fairings.Len()),
	)

	if err := g.Wait(); err != nil {
		a.logger.ErrorContext(ctx, "application stopped with error", logger.Error(err))
		return err
	}
	return nil
}

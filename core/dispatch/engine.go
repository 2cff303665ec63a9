package dispatch

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/logger"
	"github.com/yonasBSD/Rocket/core/router"
)

// Engine turns parsed requests into finalized responses.
//
// An Engine holds no per-request state: the router is frozen and shared,
// and everything mutable belongs to the request being dispatched. It is
// safe for concurrent use.
type Engine struct {
	router          *router.Router
	fairings        *fairing.Fairings
	cookies         *cookie.Manager
	logger          *slog.Logger
	tracer          trace.Tracer
	ident           string
	altSvc          string
	requestIDHeader string
	ipHeader        string
}

// New creates an engine over r, finalizing r if needed. Route collisions are
// logged as warnings; routes that collide are tried in registration order.
// Panics if r is nil.
func New(r *router.Router, opts ...Option) *Engine {
	if r == nil {
		panic(ErrNilRouter)
	}

	e := &Engine{
		router:          r,
		logger:          logger.Discard(),
		ident:           DefaultIdent,
		requestIDHeader: DefaultRequestIDHeader,
		ipHeader:        DefaultIPHeader,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.fairings == nil {
		e.fairings = fairing.New(fairing.WithLogger(e.logger))
	}
	if e.cookies == nil {
		// without secrets New cannot fail
		e.cookies, _ = cookie.New(nil)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}

	r.Finalize()
	for _, c := range r.Collisions() {
		e.logger.Warn("routes collide; registration order decides",
			logger.Component("router"),
			slog.String("first", c.First.String()),
			slog.String("second", c.Second.String()),
		)
	}
	e.logger.Debug("engine ready",
		logger.Component("engine"),
		logger.Count("routes", len(r.Routes())),
		logger.Count("catchers", len(r.Catchers())),
		logger.Count("fairings", e.fairings.Len()),
	)

	return e
}

// Router returns the engine's router.
func (e *Engine) Router() *router.Router { return e.router }

// Fairings returns the engine's fairings.
func (e *Engine) Fairings() *fairing.Fairings { return e.fairings }

// Cookies returns the manager building request cookie jars.
func (e *Engine) Cookies() *cookie.Manager { return e.cookies }

package dispatch

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/fairing"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for diagnostics. Defaults to discarding.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithFairings sets the fairings run on every request and response.
func WithFairings(fs *fairing.Fairings) Option {
	return func(e *Engine) {
		if fs != nil {
			e.fairings = fs
		}
	}
}

// WithCookieManager sets the manager that builds request cookie jars.
// Required for signed and private cookies.
func WithCookieManager(m *cookie.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.cookies = m
		}
	}
}

// WithTracer sets the tracer for the routing and catching spans.
// Defaults to the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithIdent sets the Server header added to responses without one.
// An empty ident disables the header.
func WithIdent(ident string) Option {
	return func(e *Engine) {
		e.ident = ident
	}
}

// WithAltSvc sets the Alt-Svc header advertised on every response,
// for example `h3=":443"`. Empty disables it.
func WithAltSvc(value string) Option {
	return func(e *Engine) {
		e.altSvc = value
	}
}

// WithRequestIDHeader sets the header a client-supplied request ID is read
// from. Requests without one get a random UUID.
func WithRequestIDHeader(name string) Option {
	return func(e *Engine) {
		e.requestIDHeader = name
	}
}

// WithIPHeader sets the header trusted for the real client IP, see
// handler.Request.ClientIP. Empty disables it. Defaults to DefaultIPHeader.
func WithIPHeader(name string) Option {
	return func(e *Engine) {
		e.ipHeader = name
	}
}

package fairings

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
)

// LoggingConfig configures the request logging fairing.
type LoggingConfig struct {
	// Skip excludes requests from logging, e.g. health checks.
	Skip func(req *handler.Request) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo).
	LogLevel slog.Level

	// LogRequest also logs when a request arrives. Off by default.
	LogRequest bool

	// LogHeaders adds request and response headers; SensitiveHeaders are redacted.
	LogHeaders       bool
	SensitiveHeaders []string

	// SlowRequestThreshold logs slower requests at warning level (default: 5s).
	SlowRequestThreshold time.Duration

	Component string
}

type requestLogger struct {
	cfg LoggingConfig
}

type startKey struct{}

// Logging returns a fairing that logs every response with its status,
// size, and duration.
func Logging(log *slog.Logger) fairing.Fairing {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig returns a request logging fairing configured by cfg.
// Responses with 5xx status are logged at error level, 4xx and slow ones at
// warning level.
func LoggingWithConfig(cfg LoggingConfig) fairing.Fairing {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
	return &requestLogger{cfg: cfg}
}

func (l *requestLogger) Info() fairing.Info {
	return fairing.Info{Name: "Request Logger", Kind: fairing.KindRequest | fairing.KindResponse}
}

func (l *requestLogger) OnRequest(req *handler.Request, _ *handler.Data) {
	if l.cfg.Skip != nil && l.cfg.Skip(req) {
		return
	}
	req.SetLocal(startKey{}, time.Now())

	if !l.cfg.LogRequest {
		return
	}
	attrs := []slog.Attr{
		logger.Component(l.cfg.Component),
		logger.Event("request"),
		logger.Method(req.Method()),
		logger.Path(req.Path()),
		clientIP(req),
		logger.RequestID(req.ID()),
	}
	if l.cfg.LogHeaders {
		attrs = append(attrs, l.headers("request_headers", req.Header()))
	}
	l.cfg.Logger.LogAttrs(req.Context(), l.cfg.LogLevel, "request started", attrs...)
}

func (l *requestLogger) OnResponse(req *handler.Request, resp *handler.Response) {
	v, ok := req.Local(startKey{})
	if !ok {
		return
	}
	duration := time.Since(v.(time.Time))

	attrs := []slog.Attr{
		logger.Component(l.cfg.Component),
		logger.Event("response"),
		logger.Method(req.Method()),
		logger.Path(req.Path()),
		logger.StatusCode(resp.Status),
		logger.Duration(duration),
		logger.RequestID(req.ID()),
	}
	if info := req.Route(); info != nil {
		attrs = append(attrs, logger.Key("route", info.Pattern))
	}
	if size, known := resp.Body().Size(); known {
		attrs = append(attrs, slog.Int64("bytes_out", size))
	}
	if l.cfg.LogHeaders {
		attrs = append(attrs, l.headers("response_headers", resp.Header))
	}

	level := l.cfg.LogLevel
	switch {
	case resp.Status >= http.StatusInternalServerError:
		level = slog.LevelError
	case resp.Status >= http.StatusBadRequest:
		level = slog.LevelWarn
	case duration > l.cfg.SlowRequestThreshold:
		level = slog.LevelWarn
		attrs = append(attrs, slog.Bool("slow_request", true))
	}

	l.cfg.Logger.LogAttrs(req.Context(), level, "request completed", attrs...)
}

func (l *requestLogger) headers(key string, h http.Header) slog.Attr {
	attrs := make([]any, 0, 2*len(h))
	for name, values := range h {
		if slices.Contains(l.cfg.SensitiveHeaders, name) {
			attrs = append(attrs, slog.String(name, "[REDACTED]"))
			continue
		}
		if len(values) == 1 {
			attrs = append(attrs, slog.String(name, values[0]))
		} else {
			attrs = append(attrs, slog.Any(name, values))
		}
	}
	return slog.Group(key, attrs...)
}

func clientIP(req *handler.Request) slog.Attr {
	addr, ok := req.ClientIP()
	if !ok {
		return slog.Attr{}
	}
	return logger.ClientIP(addr.String())
}

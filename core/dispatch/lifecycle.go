package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yonasBSD/Rocket/core/catcher"
	"github.com/yonasBSD/Rocket/core/guard"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
	"github.com/yonasBSD/Rocket/core/outcome"
	"github.com/yonasBSD/Rocket/core/router"
)

// RequestToken proves that Preprocess ran for a request. It is only minted by
// Preprocess; the zero value is not a valid token.
type RequestToken struct {
	engine *Engine
}

// Preprocess prepares req for dispatch. A form-encoded POST whose first
// field is _method with a valid method name has its method rewritten; then
// the request fairings run in order.
func (e *Engine) Preprocess(req *handler.Request, data *handler.Data) RequestToken {
	if method, ok := methodOverride(req, data); ok {
		e.logger.DebugContext(req.Context(), "method overridden by form field",
			logger.Method(method), logger.RequestID(req.ID()))
		req.SetMethod(method)
	}

	e.fairings.HandleRequest(req, data)
	return RequestToken{engine: e}
}

func methodOverride(req *handler.Request, data *handler.Data) (string, bool) {
	if req.Method() != http.MethodPost {
		return "", false
	}
	if ct, ok := req.ContentType(); !ok || !ct.IsForm() || data == nil {
		return "", false
	}

	peek := data.Peek(methodPeekSize)
	if !utf8.Valid(peek) {
		return "", false
	}

	field, _, _ := strings.Cut(string(peek), "&")
	name, value, _ := strings.Cut(field, "=")
	if name, err := url.QueryUnescape(name); err != nil || name != "_method" {
		return "", false
	}
	value, err := url.QueryUnescape(value)
	if err != nil {
		return "", false
	}
	return handler.ParseMethod(value)
}

// Dispatch routes req and returns the finalized response. It never fails
// and never panics because of application code: handler panics become 500
// responses, and failing catchers fall back to the built-in default.
//
// A request whose method is HEAD and that no route accepts is retried once
// as GET; the body is stripped but its length is kept.
//
// A token not minted by this engine's Preprocess causes Dispatch to
// preprocess the request itself.
func (e *Engine) Dispatch(token RequestToken, req *handler.Request, data *handler.Data) *handler.Response {
	if data == nil {
		data = handler.NewData(nil)
	}
	if token.engine != e {
		e.Preprocess(req, data)
	}

	wasHead := req.Method() == http.MethodHead
	result := e.routeOnce(req, data)

	if fwd, ok := result.ForwardValue(); ok && wasHead {
		e.logger.DebugContext(req.Context(), "autohandling HEAD request",
			logger.Path(req.Path()), logger.RequestID(req.ID()))
		req.SetMethod(http.MethodGet)
		result = e.routeOnce(req, fwd.Data)
	}

	var resp *handler.Response
	switch result.Kind() {
	case outcome.KindSuccess:
		resp, _ = result.SuccessValue()
	case outcome.KindError:
		status, _ := result.ErrorValue()
		resp = e.dispatchError(status, req)
	default:
		fwd, _ := result.ForwardValue()
		resp = e.dispatchError(fwd.Status, req)
	}

	e.finalize(req, resp, wasHead)
	return resp
}

// routeOnce tries each matching route in order until one succeeds or fails.
// When every route forwards, or none matches, it forwards with the status of
// the last forward, http.StatusNotFound by default.
func (e *Engine) routeOnce(req *handler.Request, data *handler.Data) handler.Outcome {
	ctx, span := e.tracer.Start(req.Context(), "routing",
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method()),
			attribute.String("url.path", req.Path()),
		),
	)
	defer span.End()

	status := http.StatusNotFound
	for route, params := range e.router.Route(req) {
		req.SetRoute(route.Info(), params)
		e.logger.DebugContext(ctx, "route matched",
			logger.Route(route), logger.Rank(route.Rank()), logger.RequestID(req.ID()))

		result := e.invokeRoute(ctx, route, req, data)
		if fwd, ok := result.ForwardValue(); ok {
			e.logger.DebugContext(ctx, "route forwarded",
				logger.Route(route), logger.StatusCode(fwd.Status), logger.RequestID(req.ID()))
			status = fwd.Status
			if fwd.Data != nil {
				data = fwd.Data
			}
			span.AddEvent("forward", trace.WithAttributes(attribute.String("route", route.String())))
			continue
		}

		span.SetAttributes(
			attribute.String("route", route.String()),
			attribute.String("outcome", result.Kind().String()),
		)
		return result
	}

	span.SetAttributes(attribute.String("outcome", outcome.KindForward.String()))
	return handler.Forward(data, status)
}

func (e *Engine) invokeRoute(ctx context.Context, route *router.Route, req *handler.Request, data *handler.Data) handler.Outcome {
	result, ok := guard.Run(ctx, e.logger, routeName(route), func() handler.Outcome {
		return route.Handler().Handle(req, data)
	})
	if !ok {
		return handler.Error(http.StatusInternalServerError)
	}
	if resp, isSuccess := result.SuccessValue(); isSuccess && resp == nil {
		e.logger.ErrorContext(ctx, "route returned a nil response",
			logger.Route(route), logger.RequestID(req.ID()))
		return handler.Error(http.StatusInternalServerError)
	}
	if resp, isSuccess := result.SuccessValue(); isSuccess && !validStatus(resp.Status) {
		e.logger.ErrorContext(ctx, "route returned an invalid status",
			logger.Route(route), logger.StatusCode(resp.Status), logger.RequestID(req.ID()))
		return handler.Error(http.StatusInternalServerError)
	}
	return result
}

// validStatus reports whether code can be written as an HTTP status.
func validStatus(code int) bool {
	return code >= 100 && code <= 999
}

// dispatchError produces the response for a failed request. Cookie changes
// made by failed routes are discarded first. At most two catchers run: the
// one for status, then the one for 500; after that the built-in default
// answers.
func (e *Engine) dispatchError(status int, req *handler.Request) *handler.Response {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}

	ctx, span := e.tracer.Start(req.Context(), "catching",
		trace.WithAttributes(attribute.Int("http.response.status_code", status)))
	defer span.End()

	req.Cookies().ResetDelta()

	for attempt := 1; ; attempt++ {
		resp, err := e.invokeCatcher(ctx, status, req)
		if err == nil {
			return resp
		}

		span.RecordError(err)
		if status == http.StatusInternalServerError || attempt >= maxCatcherAttempts {
			e.logger.ErrorContext(ctx, "500 catcher failed; using default",
				logger.Error(err), logger.RequestID(req.ID()))
			span.SetStatus(codes.Error, "catchers failed")
			return catcher.Default(http.StatusInternalServerError, req)
		}

		e.logger.WarnContext(ctx, "catcher failed; escalating to 500",
			logger.StatusCode(status), logger.Error(err), logger.RequestID(req.ID()))
		status = http.StatusInternalServerError
	}
}

type caught struct {
	resp *handler.Response
	err  error
}

// invokeCatcher runs the catcher registered for status, or the built-in
// default when none is registered. The default never fails.
func (e *Engine) invokeCatcher(ctx context.Context, status int, req *handler.Request) (*handler.Response, error) {
	c := e.router.Catch(status, req)
	if c == nil {
		e.logger.DebugContext(ctx, "no registered catcher; using default",
			logger.StatusCode(status), logger.RequestID(req.ID()))
		return catcher.Default(status, req), nil
	}

	name := catcherName(c)
	e.logger.DebugContext(ctx, "catching", logger.Handler(name), logger.StatusCode(status))

	result, ok := guard.Run(ctx, e.logger, name, func() caught {
		resp, err := c.Handler().HandleError(status, req)
		return caught{resp: resp, err: err}
	})
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %s", ErrCatcherPanicked, name)
	case result.err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrCatcherFailed, name, result.err)
	case result.resp == nil:
		return nil, fmt.Errorf("%w from catcher %s", ErrNilResponse, name)
	case !validStatus(result.resp.Status):
		return nil, fmt.Errorf("%w %d from catcher %s", ErrInvalidStatus, result.resp.Status, name)
	}
	return result.resp, nil
}

// finalize applies the engine's headers and body rules to resp. It never
// changes the status.
func (e *Engine) finalize(req *handler.Request, resp *handler.Response, wasHead bool) {
	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	for _, c := range req.Cookies().TakeDelta() {
		if v := c.String(); v != "" {
			resp.Header.Add("Set-Cookie", v)
		}
	}

	if e.ident != "" && resp.Header.Get("Server") == "" {
		resp.Header.Set("Server", e.ident)
	}

	e.fairings.HandleResponse(req, resp)
	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	body := resp.Body()
	if wasHead || resp.Status == http.StatusNotModified {
		body.Strip()
	}

	if resp.Status == http.StatusNoContent {
		body.Clear()
		resp.Header.Del("Content-Length")
	} else if size, ok := body.Size(); ok {
		resp.Header.Set("Content-Length", strconv.FormatInt(size, 10))
	}

	if e.altSvc != "" {
		resp.Header.Set("Alt-Svc", e.altSvc)
	}

	e.logger.DebugContext(req.Context(), "response finalized",
		logger.Method(req.Method()),
		logger.Path(req.Path()),
		logger.StatusCode(resp.Status),
		logger.RequestID(req.ID()),
	)
}

func routeName(r *router.Route) string {
	if r.Name() != "" {
		return r.Name()
	}
	return r.String()
}

func catcherName(c *router.Catcher) string {
	if c.Name() != "" {
		return c.Name()
	}
	return "catcher " + c.String()
}

package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Route binds a method, path pattern, and optional format to a handler.
//
// Routes are immutable once mounted; mounting copies them.
type Route struct {
	name    string
	method  string
	rank    int
	ranked  bool
	format  handler.MediaType
	handler handler.Handler
	matcher *matcher
	info    *handler.RouteInfo
}

// RouteOption configures a Route.
type RouteOption func(*Route)

// WithRank sets an explicit rank. Lower ranks are tried first.
func WithRank(rank int) RouteOption {
	return func(r *Route) {
		r.rank = rank
		r.ranked = true
	}
}

// WithName sets the display name used in diagnostics.
func WithName(name string) RouteOption {
	return func(r *Route) {
		r.name = name
	}
}

// WithFormat restricts the route to requests whose format collides with
// format, e.g. "json", "text/html", or "image/*". Panics on an invalid format.
func WithFormat(format string) RouteOption {
	return func(r *Route) {
		mt, ok := handler.ParseMediaType(format)
		if !ok {
			panic(fmt.Errorf("%w: '%s'", ErrInvalidFormat, format))
		}
		r.format = mt
	}
}

// NewRoute creates a route. Method handler.MethodAny matches all methods.
// Panics on an invalid method, pattern, or a nil handler, as registration
// errors are programming errors.
func NewRoute(method, pattern string, h handler.Handler, opts ...RouteOption) *Route {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}
	if method != handler.MethodAny {
		m, ok := handler.ParseMethod(method)
		if !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		method = m
	}

	r := &Route{method: method, handler: h}
	for _, opt := range opts {
		opt(r)
	}
	r.setPattern(pattern)
	return r
}

// Get creates a GET route.
func Get(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodGet, pattern, h, opts...)
}

// Head creates a HEAD route.
func Head(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodHead, pattern, h, opts...)
}

// Post creates a POST route.
func Post(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodPost, pattern, h, opts...)
}

// Put creates a PUT route.
func Put(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodPut, pattern, h, opts...)
}

// Patch creates a PATCH route.
func Patch(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodPatch, pattern, h, opts...)
}

// Delete creates a DELETE route.
func Delete(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(http.MethodDelete, pattern, h, opts...)
}

// Any creates a route matching every method.
func Any(pattern string, h handler.Handler, opts ...RouteOption) *Route {
	return NewRoute(handler.MethodAny, pattern, h, opts...)
}

func (r *Route) setPattern(pattern string) {
	m, err := parsePattern(pattern)
	if err != nil {
		panic(err)
	}
	r.matcher = m
	if !r.ranked {
		r.rank = m.defaultRank()
	}
	r.info = &handler.RouteInfo{
		Name:    r.name,
		Method:  r.method,
		Pattern: pattern,
		Format:  r.format.String(),
		Rank:    r.rank,
	}
}

// mountedAt returns a copy of r with its pattern prefixed by base.
func (r *Route) mountedAt(base string) *Route {
	cp := *r
	cp.setPattern(joinPath(base, r.matcher.pattern))
	return &cp
}

// Name returns the display name, possibly empty.
func (r *Route) Name() string { return r.name }

// Method returns the route method or handler.MethodAny.
func (r *Route) Method() string { return r.method }

// Pattern returns the full path pattern including the mount base.
func (r *Route) Pattern() string { return r.matcher.pattern }

// Rank returns the route rank.
func (r *Route) Rank() int { return r.rank }

// Format returns the route format, zero when unrestricted.
func (r *Route) Format() handler.MediaType { return r.format }

// Handler returns the route handler.
func (r *Route) Handler() handler.Handler { return r.handler }

// Info returns the description attached to requests this route serves.
func (r *Route) Info() *handler.RouteInfo { return r.info }

// String implements fmt.Stringer.
func (r *Route) String() string {
	var b strings.Builder
	b.WriteString(r.method)
	b.WriteByte(' ')
	b.WriteString(r.matcher.pattern)
	if !r.format.IsZero() {
		b.WriteString(" [" + r.format.String() + "]")
	}
	fmt.Fprintf(&b, " rank=%d", r.rank)
	if r.name != "" {
		b.WriteString(" (" + r.name + ")")
	}
	return b.String()
}

// Match reports whether r can serve req and returns the captured parameters.
func (r *Route) Match(req *handler.Request) (map[string]string, bool) {
	if r.method != handler.MethodAny && r.method != req.Method() {
		return nil, false
	}
	params, ok := r.matcher.match(req.Segments())
	if !ok || !r.formatMatches(req) {
		return nil, false
	}
	return params, true
}

// formatMatches applies the route format to req. Methods with a payload
// need a fully specified Content-Type that collides with the format; other
// methods match when the preferred Accept type collides or is absent.
func (r *Route) formatMatches(req *handler.Request) bool {
	if r.format.IsZero() {
		return true
	}

	reqFormat, ok := req.Format()
	if handler.AllowsBody(req.Method()) {
		return ok && reqFormat.Specific() && r.format.Collides(reqFormat)
	}
	return !ok || r.format.Collides(reqFormat)
}

// collides reports whether r and o could both match some request at the same rank.
func (r *Route) collides(o *Route) bool {
	if r.rank != o.rank {
		return false
	}
	if r.method != o.method && r.method != handler.MethodAny && o.method != handler.MethodAny {
		return false
	}
	if !r.format.IsZero() && !o.format.IsZero() && !r.format.Collides(o.format) {
		return false
	}
	return r.matcher.collides(o.matcher)
}

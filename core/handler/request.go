package handler

import (
	"context"
	"net/http"
	"net/netip"
	"net/url"
	"strings"

	"github.com/yonasBSD/Rocket/core/cookie"
)

// RouteInfo describes the route currently serving a request.
type RouteInfo struct {
	Name    string
	Method  string
	Pattern string
	Format  string
	Rank    int
}

// Request is a parsed HTTP request as seen by route handlers and catchers.
//
// A Request is owned by the single goroutine dispatching it. The method is
// rewritten only during preprocessing and the HEAD to GET retry, and the
// attached route is overwritten on every routing attempt.
type Request struct {
	ctx        context.Context
	method     string
	url        *url.URL
	header     http.Header
	remoteAddr string
	ipHeader   string
	id         string
	cookies    *cookie.Jar
	route      *RouteInfo
	params     map[string]string
	locals     map[any]any
	raw        *http.Request
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithContext sets the request context.
func WithContext(ctx context.Context) RequestOption {
	return func(r *Request) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// WithHeader sets the request header.
func WithHeader(h http.Header) RequestOption {
	return func(r *Request) {
		if h != nil {
			r.header = h
		}
	}
}

// WithCookies sets the request cookie jar.
func WithCookies(jar *cookie.Jar) RequestOption {
	return func(r *Request) {
		r.cookies = jar
	}
}

// WithRequestID sets the request identifier used in diagnostics.
func WithRequestID(id string) RequestOption {
	return func(r *Request) {
		r.id = id
	}
}

// WithRemoteAddr sets the client network address.
func WithRemoteAddr(addr string) RequestOption {
	return func(r *Request) {
		r.remoteAddr = addr
	}
}

// WithIPHeader names the header carrying the real client IP, as set by a
// reverse proxy. See ClientIP.
func WithIPHeader(name string) RequestOption {
	return func(r *Request) {
		r.ipHeader = name
	}
}

// NewRequest creates a request for method and target, where target is a
// path with an optional query. Without WithCookies the jar is built from the
// Cookie header by a manager with default settings.
func NewRequest(method, target string, opts ...RequestOption) *Request {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		u = &url.URL{Path: target}
	}

	r := &Request{
		ctx:    context.Background(),
		method: method,
		url:    u,
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cookies == nil {
		m, _ := cookie.New(nil)
		r.cookies = m.NewJar(r.header)
	}
	return r
}

// FromHTTP creates a request from a server-side *http.Request.
func FromHTTP(hr *http.Request, jar *cookie.Jar, opts ...RequestOption) *Request {
	all := make([]RequestOption, 0, len(opts)+4)
	all = append(all,
		WithContext(hr.Context()),
		WithHeader(hr.Header),
		WithRemoteAddr(hr.RemoteAddr),
		WithCookies(jar),
	)
	all = append(all, opts...)

	r := NewRequest(hr.Method, hr.URL.RequestURI(), all...)
	r.url = hr.URL
	r.raw = hr
	return r
}

// Context returns the request context. It is cancelled when the client goes away.
func (r *Request) Context() context.Context { return r.ctx }

// Method returns the effective request method.
func (r *Request) Method() string { return r.method }

// SetMethod rewrites the effective request method.
// Only preprocessing, request fairings, and the engine should call it.
func (r *Request) SetMethod(method string) { r.method = method }

// URL returns the request URL.
func (r *Request) URL() *url.URL { return r.url }

// Path returns the URL path, "/" when empty.
func (r *Request) Path() string {
	if r.url.Path == "" {
		return "/"
	}
	return r.url.Path
}

// Segments returns the path segments after the leading slash. The raw path
// is split first and each segment is percent-decoded on its own, so an
// encoded slash stays inside its segment. A segment that fails to decode is
// kept as sent. "/" yields a single empty segment.
func (r *Request) Segments() []string {
	raw := strings.TrimPrefix(r.url.EscapedPath(), "/")
	parts := strings.Split(raw, "/")
	for i, part := range parts {
		if decoded, err := url.PathUnescape(part); err == nil {
			parts[i] = decoded
		}
	}
	return parts
}

// Header returns the request header.
func (r *Request) Header() http.Header { return r.header }

// Cookies returns the request cookie jar.
func (r *Request) Cookies() *cookie.Jar { return r.cookies }

// ID returns the request identifier, if any.
func (r *Request) ID() string { return r.id }

// RemoteAddr returns the client network address, if known.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// ClientIP returns the client's IP address. A valid address in the IP header
// wins over the remote address; an invalid one is ignored. Reports false
// when neither yields an address.
func (r *Request) ClientIP() (netip.Addr, bool) {
	if r.ipHeader != "" {
		if addr, err := netip.ParseAddr(strings.TrimSpace(r.header.Get(r.ipHeader))); err == nil {
			return addr.Unmap(), true
		}
	}
	if ap, err := netip.ParseAddrPort(r.remoteAddr); err == nil {
		return ap.Addr().Unmap(), true
	}
	if addr, err := netip.ParseAddr(r.remoteAddr); err == nil {
		return addr.Unmap(), true
	}
	return netip.Addr{}, false
}

// HTTPRequest returns the *http.Request this request was built from, or nil.
func (r *Request) HTTPRequest() *http.Request { return r.raw }

// ContentType returns the parsed Content-Type header.
func (r *Request) ContentType() (MediaType, bool) {
	return ParseMediaType(r.header.Get("Content-Type"))
}

// Format returns the media type that describes this request: the
// Content-Type for methods with a payload, the preferred Accept type otherwise.
func (r *Request) Format() (MediaType, bool) {
	if AllowsBody(r.method) {
		return r.ContentType()
	}
	return r.Accept()
}

// Accept returns the preferred media type of the Accept header.
func (r *Request) Accept() (MediaType, bool) {
	return preferredAccept(r.header.Get("Accept"))
}

// Route returns the route currently serving the request, or nil.
func (r *Request) Route() *RouteInfo { return r.route }

// SetRoute attaches the route about to handle the request along with the
// parameters it captured. Called by the engine before each attempt.
func (r *Request) SetRoute(info *RouteInfo, params map[string]string) {
	r.route = info
	r.params = params
}

// SetLocal stores v on the request under key. Values live as long as the
// request and are dropped with it. Use an unexported key type to avoid
// collisions, as with context values.
func (r *Request) SetLocal(key, v any) {
	if r.locals == nil {
		r.locals = make(map[any]any)
	}
	r.locals[key] = v
}

// Local returns the value stored under key by SetLocal.
func (r *Request) Local(key any) (any, bool) {
	v, ok := r.locals[key]
	return v, ok
}

// Param returns the path parameter captured by the current route.
// The multi-segment capture is stored under "*".
func (r *Request) Param(name string) string {
	return r.params[name]
}

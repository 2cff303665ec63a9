package fairings

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/handler"
)

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Skip func(req *handler.Request) bool

	// AllowOrigins lists allowed origins. Empty or "*" allows all.
	AllowOrigins []string

	// AllowMethods defaults to GET, HEAD, PUT, PATCH, POST, DELETE.
	AllowMethods []string

	// AllowHeaders defaults to common headers including Authorization and Content-Type.
	AllowHeaders []string

	ExposeHeaders []string

	// AllowCredentials is never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int

	// AllowOriginFunc takes precedence over AllowOrigins. It returns the
	// origin to send back and whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

type cors struct {
	cfg           CORSConfig
	origins       map[string]bool
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
}

// CORS returns a fairing allowing cross-origin requests from any origin.
func CORS() fairing.Fairing {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig returns a response fairing that adds CORS headers to
// responses and answers preflight requests. A preflight is an OPTIONS request
// with Access-Control-Request-Method; whatever the router produced for it is
// replaced by 204, or 403 when the origin or method is not allowed.
func CORSWithConfig(cfg CORSConfig) fairing.Fairing {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-Id",
		}
	}

	origins := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		origins[origin] = true
	}

	return &cors{
		cfg:           cfg,
		origins:       origins,
		allowMethods:  strings.Join(cfg.AllowMethods, ","),
		allowHeaders:  strings.Join(cfg.AllowHeaders, ","),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ","),
	}
}

func (c *cors) Info() fairing.Info {
	return fairing.Info{Name: "CORS", Kind: fairing.KindResponse}
}

func (c *cors) allow(origin string) (string, bool) {
	switch {
	case c.cfg.AllowOriginFunc != nil:
		return c.cfg.AllowOriginFunc(origin)
	case len(c.origins) == 0 || c.origins["*"]:
		return "*", true
	case c.origins[origin]:
		return origin, true
	}
	return "", false
}

func (c *cors) OnResponse(req *handler.Request, resp *handler.Response) {
	if c.cfg.Skip != nil && c.cfg.Skip(req) {
		return
	}

	allowedOrigin, allowed := c.allow(req.Header().Get("Origin"))
	requestMethod := req.Header().Get("Access-Control-Request-Method")

	if req.Method() == http.MethodOptions && requestMethod != "" {
		c.preflight(req, resp, allowedOrigin, allowed && slices.Contains(c.cfg.AllowMethods, requestMethod))
		return
	}

	if !allowed {
		return
	}
	h := resp.Header
	h.Set("Access-Control-Allow-Origin", allowedOrigin)
	if c.cfg.AllowCredentials && allowedOrigin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if c.exposeHeaders != "" {
		h.Set("Access-Control-Expose-Headers", c.exposeHeaders)
	}
	h.Add("Vary", "Origin")
}

func (c *cors) preflight(req *handler.Request, resp *handler.Response, allowedOrigin string, allowed bool) {
	resp.SetBody(handler.EmptyBody())
	resp.Header.Del("Content-Type")

	if !allowed {
		resp.Status = http.StatusForbidden
		return
	}

	resp.Status = http.StatusNoContent
	h := resp.Header
	h.Set("Access-Control-Allow-Origin", allowedOrigin)
	h.Set("Access-Control-Allow-Methods", c.allowMethods)
	if req.Header().Get("Access-Control-Request-Headers") != "" {
		h.Set("Access-Control-Allow-Headers", c.allowHeaders)
	}
	if c.cfg.AllowCredentials && allowedOrigin != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if c.cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(c.cfg.MaxAge))
	}
	h.Add("Vary", "Origin")
	h.Add("Vary", "Access-Control-Request-Method")
	h.Add("Vary", "Access-Control-Request-Headers")
}

// AllowOriginSubdomain allows domain and all of its subdomains, on any port.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(domain, "*."), "."))
	suffix := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}
		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, suffix) {
			return origin, true
		}
		return "", false
	}
}

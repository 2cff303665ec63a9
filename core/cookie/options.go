package cookie

import "net/http"

// Options holds the attributes applied to cookies added to a jar
// when the cookie itself leaves them unset.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option is a functional option for configuring cookie defaults.
type Option func(*Options)

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie max-age in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithSecure sets the secure flag, ensuring cookies are only sent over HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly prevents JavaScript access to the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute for CSRF protection.
func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// applyOptions copies base and applies opts so shared defaults are never mutated.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}

// fill sets every attribute the cookie leaves at its zero value.
func (o Options) fill(c *http.Cookie) {
	if c.Path == "" {
		c.Path = o.Path
	}
	if c.Domain == "" {
		c.Domain = o.Domain
	}
	if c.MaxAge == 0 && c.Expires.IsZero() {
		c.MaxAge = o.MaxAge
	}
	if !c.Secure {
		c.Secure = o.Secure
	}
	if !c.HttpOnly {
		c.HttpOnly = o.HttpOnly
	}
	if c.SameSite == 0 {
		c.SameSite = o.SameSite
	}
}

package router

import (
	"fmt"
	"strconv"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Catcher binds a status code, or every status when Code is 0, to an error
// handler for requests under a base path.
type Catcher struct {
	name    string
	code    int
	base    string
	prefix  []string
	handler handler.ErrorHandler
}

// CatcherOption configures a Catcher.
type CatcherOption func(*Catcher)

// WithCatcherName sets the display name used in diagnostics.
func WithCatcherName(name string) CatcherOption {
	return func(c *Catcher) {
		c.name = name
	}
}

// NewCatcher creates a catcher for status code, between 400 and 599.
// Panics on an invalid code or a nil handler.
func NewCatcher(code int, h handler.ErrorHandler, opts ...CatcherOption) *Catcher {
	if code < 400 || code > 599 {
		panic(fmt.Errorf("%w: %d", ErrInvalidStatus, code))
	}
	return newCatcher(code, h, opts)
}

// NewDefaultCatcher creates a catcher for every status without a more
// specific catcher.
func NewDefaultCatcher(h handler.ErrorHandler, opts ...CatcherOption) *Catcher {
	return newCatcher(0, h, opts)
}

func newCatcher(code int, h handler.ErrorHandler, opts []CatcherOption) *Catcher {
	if h == nil {
		panic(fmt.Errorf("%w for catcher %d", ErrNilHandler, code))
	}
	c := &Catcher{code: code, handler: h}
	for _, opt := range opts {
		opt(c)
	}
	c.setBase("/")
	return c
}

func (c *Catcher) setBase(base string) {
	if base == "" || base[0] != '/' {
		panic(fmt.Errorf("%w: catcher base '%s'", ErrInvalidPattern, base))
	}
	c.base = base
	c.prefix = nil
	for _, part := range splitPath(base) {
		if part != "" {
			c.prefix = append(c.prefix, part)
		}
	}
}

func (c *Catcher) registeredAt(base string) *Catcher {
	cp := *c
	cp.setBase(joinPath(base, c.base))
	return &cp
}

// Name returns the display name, possibly empty.
func (c *Catcher) Name() string { return c.name }

// Code returns the status code, 0 for a default catcher.
func (c *Catcher) Code() int { return c.code }

// IsDefault reports whether c catches every status.
func (c *Catcher) IsDefault() bool { return c.code == 0 }

// Base returns the base path the catcher applies under.
func (c *Catcher) Base() string { return c.base }

// Rank orders catchers: a more specific base has a lower rank.
func (c *Catcher) Rank() int { return -len(c.prefix) }

// Handler returns the error handler.
func (c *Catcher) Handler() handler.ErrorHandler { return c.handler }

// String implements fmt.Stringer.
func (c *Catcher) String() string {
	code := "default"
	if c.code != 0 {
		code = strconv.Itoa(c.code)
	}
	s := code + " " + c.base
	if c.name != "" {
		s += " (" + c.name + ")"
	}
	return s
}

// Matches reports whether c applies to status for req.
func (c *Catcher) Matches(status int, req *handler.Request) bool {
	if c.code != 0 && c.code != status {
		return false
	}

	parts := req.Segments()
	if len(parts) < len(c.prefix) {
		return false
	}
	for i, p := range c.prefix {
		if parts[i] != p {
			return false
		}
	}
	return true
}

package router

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Router holds the route and catcher tables.
//
// Tables are built with Mount and Register, then frozen by Finalize.
// A finalized Router is read-only and safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	routes   []*Route
	catchers []*Catcher
	frozen   atomic.Bool
}

// Collision is a pair of routes that can match the same request at the same rank.
// The one registered first is always tried first.
type Collision struct {
	First  *Route
	Second *Route
}

// String implements fmt.Stringer.
func (c Collision) String() string {
	return fmt.Sprintf("%s collides with %s", c.First, c.Second)
}

// New creates an empty router.
func New() *Router {
	return &Router{}
}

// Mount registers routes under base. Routes are copied, so the same route
// may be mounted at several bases. Panics after Finalize.
func (r *Router) Mount(base string, routes ...*Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		panic(ErrFrozen)
	}
	for _, route := range routes {
		r.routes = append(r.routes, route.mountedAt(base))
	}
}

// Register registers catchers under base. Panics after Finalize.
func (r *Router) Register(base string, catchers ...*Catcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		panic(ErrFrozen)
	}
	for _, c := range catchers {
		r.catchers = append(r.catchers, c.registeredAt(base))
	}
}

// Finalize orders the tables and freezes them. Routes are ordered by rank;
// routes with equal rank keep registration order. Calling it again is a no-op.
func (r *Router) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return
	}
	slices.SortStableFunc(r.routes, func(a, b *Route) int { return a.rank - b.rank })
	slices.SortStableFunc(r.catchers, func(a, b *Catcher) int { return a.Rank() - b.Rank() })
	r.frozen.Store(true)
}

// Finalized reports whether Finalize was called.
func (r *Router) Finalized() bool {
	return r.frozen.Load()
}

// Route yields, in order, every route that can serve req with the
// parameters it captures. The sequence is lazy and may be empty.
func (r *Router) Route(req *handler.Request) iter.Seq2[*Route, map[string]string] {
	r.mustBeFinalized()
	return func(yield func(*Route, map[string]string) bool) {
		for _, route := range r.routes {
			params, ok := route.Match(req)
			if !ok {
				continue
			}
			if !yield(route, params) {
				return
			}
		}
	}
}

// Catch returns the catcher for status and req, or nil when none applies.
//
// The status-specific catcher with the most specific base is preferred; the
// default catcher with the most specific base is used instead only when its
// base is strictly more specific.
func (r *Router) Catch(status int, req *handler.Request) *Catcher {
	r.mustBeFinalized()

	var explicit, fallback *Catcher
	for _, c := range r.catchers {
		if explicit != nil && fallback != nil {
			break
		}
		if !c.Matches(status, req) {
			continue
		}
		if c.IsDefault() {
			if fallback == nil {
				fallback = c
			}
		} else if explicit == nil {
			explicit = c
		}
	}

	switch {
	case explicit == nil:
		return fallback
	case fallback == nil:
		return explicit
	case fallback.Rank() < explicit.Rank():
		return fallback
	default:
		return explicit
	}
}

// Collisions reports every pair of routes that can match the same request
// at the same rank. Such routes are tried in registration order.
func (r *Router) Collisions() []Collision {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Collision
	for i, a := range r.routes {
		for _, b := range r.routes[i+1:] {
			if a.collides(b) {
				out = append(out, Collision{First: a, Second: b})
			}
		}
	}
	return out
}

// Routes returns the registered routes in routing order once finalized.
func (r *Router) Routes() []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.routes)
}

// Catchers returns the registered catchers.
func (r *Router) Catchers() []*Catcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.catchers)
}

func (r *Router) mustBeFinalized() {
	if !r.frozen.Load() {
		panic(ErrNotFinalized)
	}
}

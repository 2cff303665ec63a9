package fairing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yonasBSD/Rocket/core/guard"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
)

// Fairings is an ordered set of attached fairings.
//
// Attach all fairings before serving. Callbacks of one kind run sequentially
// in attach order; a panicking callback is logged and skipped.
type Fairings struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	all      []Fairing
	request  []RequestFairing
	response []ResponseFairing
	liftoff  []LiftoffFairing
	shutdown []ShutdownFairing
}

// Option configures Fairings.
type Option func(*Fairings)

// WithLogger sets the logger used to report panicking callbacks.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fairings) {
		if log != nil {
			f.logger = log
		}
	}
}

// New creates an empty fairing set.
func New(opts ...Option) *Fairings {
	f := &Fairings{logger: logger.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Attach appends fairings. Panics when a fairing declares a kind whose
// callback interface it does not implement.
func (f *Fairings) Attach(fairings ...Fairing) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, fr := range fairings {
		if fr == nil {
			panic(ErrNilFairing)
		}
		info := fr.Info()
		if info.Kind.Is(KindRequest) {
			rf, ok := fr.(RequestFairing)
			if !ok {
				panic(missing(info, KindRequest))
			}
			f.request = append(f.request, rf)
		}
		if info.Kind.Is(KindResponse) {
			rf, ok := fr.(ResponseFairing)
			if !ok {
				panic(missing(info, KindResponse))
			}
			f.response = append(f.response, rf)
		}
		if info.Kind.Is(KindLiftoff) {
			lf, ok := fr.(LiftoffFairing)
			if !ok {
				panic(missing(info, KindLiftoff))
			}
			f.liftoff = append(f.liftoff, lf)
		}
		if info.Kind.Is(KindShutdown) {
			sf, ok := fr.(ShutdownFairing)
			if !ok {
				panic(missing(info, KindShutdown))
			}
			f.shutdown = append(f.shutdown, sf)
		}
		f.all = append(f.all, fr)
	}
}

func missing(info Info, kind Kind) error {
	return fmt.Errorf("%w: '%s' declares %s", ErrMissingCallback, info.Name, kind)
}

// Info lists attached fairings in attach order.
func (f *Fairings) Info() []Info {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Info, len(f.all))
	for i, fr := range f.all {
		out[i] = fr.Info()
	}
	return out
}

// Len returns the number of attached fairings.
func (f *Fairings) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.all)
}

// HandleRequest runs request callbacks.
func (f *Fairings) HandleRequest(req *handler.Request, data *handler.Data) {
	f.mu.RLock()
	hooks := f.request
	f.mu.RUnlock()

	for _, h := range hooks {
		guard.Do(req.Context(), f.logger, fairingName(h), func() { h.OnRequest(req, data) })
	}
}

// HandleResponse runs response callbacks.
func (f *Fairings) HandleResponse(req *handler.Request, resp *handler.Response) {
	f.mu.RLock()
	hooks := f.response
	f.mu.RUnlock()

	for _, h := range hooks {
		guard.Do(req.Context(), f.logger, fairingName(h), func() { h.OnResponse(req, resp) })
	}
}

// HandleLiftoff runs liftoff callbacks.
func (f *Fairings) HandleLiftoff(ctx context.Context) {
	f.mu.RLock()
	hooks := f.liftoff
	f.mu.RUnlock()

	for _, h := range hooks {
		f.logger.DebugContext(ctx, "liftoff", logger.Fairing(h.Info().Name))
		guard.Do(ctx, f.logger, fairingName(h), func() { h.OnLiftoff(ctx) })
	}
}

// HandleShutdown runs shutdown callbacks.
func (f *Fairings) HandleShutdown(ctx context.Context) {
	f.mu.RLock()
	hooks := f.shutdown
	f.mu.RUnlock()

	for _, h := range hooks {
		f.logger.DebugContext(ctx, "shutdown", logger.Fairing(h.Info().Name))
		guard.Do(ctx, f.logger, fairingName(h), func() { h.OnShutdown(ctx) })
	}
}

func fairingName(f Fairing) string {
	return "fairing:" + f.Info().Name
}

package fairing

import (
	"context"
	"strings"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Kind is a set of lifecycle callbacks a fairing wants to receive.
type Kind uint8

const (
	KindRequest Kind = 1 << iota
	KindResponse
	KindLiftoff
	KindShutdown
)

// Is reports whether k includes every callback in other.
func (k Kind) Is(other Kind) bool {
	return k&other == other && other != 0
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	var parts []string
	for _, kv := range []struct {
		kind Kind
		name string
	}{
		{KindRequest, "request"},
		{KindResponse, "response"},
		{KindLiftoff, "liftoff"},
		{KindShutdown, "shutdown"},
	} {
		if k.Is(kv.kind) {
			parts = append(parts, kv.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Info names a fairing and the callbacks it receives.
type Info struct {
	Name string
	Kind Kind
}

// Fairing is a lifecycle hook. A fairing implements the callback interface
// for every kind it declares in Info; undeclared callbacks are never called.
type Fairing interface {
	Info() Info
}

// RequestFairing observes or rewrites requests before routing.
type RequestFairing interface {
	Fairing
	OnRequest(req *handler.Request, data *handler.Data)
}

// ResponseFairing observes or rewrites responses before they are finalized.
type ResponseFairing interface {
	Fairing
	OnResponse(req *handler.Request, resp *handler.Response)
}

// LiftoffFairing runs once the server is listening.
type LiftoffFairing interface {
	Fairing
	OnLiftoff(ctx context.Context)
}

// ShutdownFairing runs once the server starts shutting down.
type ShutdownFairing interface {
	Fairing
	OnShutdown(ctx context.Context)
}

// adHoc is a fairing built from plain functions.
type adHoc struct {
	info       Info
	onRequest  func(*handler.Request, *handler.Data)
	onResponse func(*handler.Request, *handler.Response)
	onLiftoff  func(context.Context)
	onShutdown func(context.Context)
}

func (a *adHoc) Info() Info { return a.info }

func (a *adHoc) OnRequest(req *handler.Request, data *handler.Data) { a.onRequest(req, data) }

func (a *adHoc) OnResponse(req *handler.Request, resp *handler.Response) { a.onResponse(req, resp) }

func (a *adHoc) OnLiftoff(ctx context.Context) { a.onLiftoff(ctx) }

func (a *adHoc) OnShutdown(ctx context.Context) { a.onShutdown(ctx) }

// OnRequest creates a request fairing from fn.
func OnRequest(name string, fn func(req *handler.Request, data *handler.Data)) Fairing {
	return &adHoc{info: Info{Name: name, Kind: KindRequest}, onRequest: fn}
}

// OnResponse creates a response fairing from fn.
func OnResponse(name string, fn func(req *handler.Request, resp *handler.Response)) Fairing {
	return &adHoc{info: Info{Name: name, Kind: KindResponse}, onResponse: fn}
}

// OnLiftoff creates a liftoff fairing from fn.
func OnLiftoff(name string, fn func(ctx context.Context)) Fairing {
	return &adHoc{info: Info{Name: name, Kind: KindLiftoff}, onLiftoff: fn}
}

// OnShutdown creates a shutdown fairing from fn.
func OnShutdown(name string, fn func(ctx context.Context)) Fairing {
	return &adHoc{info: Info{Name: name, Kind: KindShutdown}, onShutdown: fn}
}

package upgrade

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures a WebSocket handler.
type Option func(*WebSocket)

// WithReadBuffer sets the read buffer size in bytes.
func WithReadBuffer(size int) Option {
	return func(ws *WebSocket) {
		ws.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the write buffer size in bytes.
func WithWriteBuffer(size int) Option {
	return func(ws *WebSocket) {
		ws.upgrader.WriteBufferSize = size
	}
}

func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(ws *WebSocket) {
		ws.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck replaces the same-origin check applied to the handshake.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(ws *WebSocket) {
		ws.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin disables the origin check. Only use it for endpoints
// that do not rely on cookies for authentication.
func WithAllowAnyOrigin() Option {
	return func(ws *WebSocket) {
		ws.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
}

// WithSubprotocols sets the server's supported subprotocols in preference order.
func WithSubprotocols(protocols ...string) Option {
	return func(ws *WebSocket) {
		ws.upgrader.Subprotocols = protocols
	}
}

func WithCompression() Option {
	return func(ws *WebSocket) {
		ws.upgrader.EnableCompression = true
	}
}

// WithResponseHeader adds headers to the handshake response. They are merged
// over the headers of the routed response.
func WithResponseHeader(header http.Header) Option {
	return func(ws *WebSocket) {
		ws.responseHeader = header
	}
}

func WithOnConnect(fn func(context.Context, *websocket.Conn) error) Option {
	return func(ws *WebSocket) {
		ws.onConnect = fn
	}
}

func WithOnDisconnect(fn func(context.Context, *websocket.Conn)) Option {
	return func(ws *WebSocket) {
		ws.onDisconnect = fn
	}
}

// WithErrorHandler is called with handshake and session errors.
func WithErrorHandler(fn func(context.Context, error)) Option {
	return func(ws *WebSocket) {
		ws.onError = fn
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(ws *WebSocket) {
		if log != nil {
			ws.logger = log
		}
	}
}

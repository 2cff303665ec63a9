package upgrade

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
)

// Protocol is the Upgrade token for WebSocket connections.
const Protocol = "websocket"

// SessionFunc runs a WebSocket session. The connection is closed when it
// returns.
type SessionFunc func(ctx context.Context, conn *websocket.Conn) error

// WebSocket is an I/O handler that completes the WebSocket handshake and runs
// a session on the connection.
type WebSocket struct {
	upgrader       websocket.Upgrader
	responseHeader http.Header
	session        SessionFunc
	onConnect      func(context.Context, *websocket.Conn) error
	onDisconnect   func(context.Context, *websocket.Conn)
	onError        func(context.Context, error)
	logger         *slog.Logger
}

// NewWebSocket returns a WebSocket handler running session for every
// connection. It panics if session is nil.
func NewWebSocket(session SessionFunc, opts ...Option) *WebSocket {
	if session == nil {
		panic(ErrNilFunc)
	}
	ws := &WebSocket{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		session: session,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

// Attach registers ws as the websocket upgrade of resp and returns resp.
func (ws *WebSocket) Attach(resp *handler.Response) *handler.Response {
	resp.AddUpgrade(Protocol, ws)
	return resp
}

// ServeIO implements handler.IoHandler.
func (ws *WebSocket) ServeIO(w http.ResponseWriter, r *http.Request, header http.Header) error {
	ctx := r.Context()

	responseHeader := header.Clone()
	if responseHeader == nil {
		responseHeader = http.Header{}
	}
	maps.Copy(responseHeader, ws.responseHeader)
	// The handshake writes its own framing headers.
	responseHeader.Del("Content-Length")
	responseHeader.Del("Content-Type")

	conn, err := ws.upgrader.Upgrade(w, r, responseHeader)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
		ws.fail(ctx, err)
		return err
	}
	defer func() {
		_ = conn.Close()
		if ws.onDisconnect != nil {
			ws.onDisconnect(ctx, conn)
		}
		ws.logger.DebugContext(ctx, "websocket closed", logger.Path(r.URL.Path))
	}()

	ws.logger.DebugContext(ctx, "websocket connected",
		logger.Path(r.URL.Path), logger.Key("subprotocol", conn.Subprotocol()))

	if ws.onConnect != nil {
		if err := ws.onConnect(ctx, conn); err != nil {
			ws.fail(ctx, err)
			return nil
		}
	}

	if err := ws.session(ctx, conn); err != nil {
		ws.fail(ctx, err)
	}
	return nil
}

func (ws *WebSocket) fail(ctx context.Context, err error) {
	if ws.onError != nil {
		ws.onError(ctx, err)
		return
	}
	ws.logger.WarnContext(ctx, "websocket session failed", logger.Error(err))
}

// Echo returns a WebSocket handler that writes every message back to the
// client until it disconnects.
func Echo(opts ...Option) *WebSocket {
	return NewWebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return err
				}
				return nil
			}
			if err := conn.WriteMessage(msgType, data); err != nil {
				return err
			}
		}
	}, opts...)
}

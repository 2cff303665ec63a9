package upgrade

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/yonasBSD/Rocket/core/handler"
)

// ConnFunc runs a raw upgraded connection. Buffered client bytes that arrived
// with the handshake are available through rw. The connection is closed when
// it returns.
type ConnFunc func(ctx context.Context, conn net.Conn, rw *bufio.ReadWriter) error

// RawHandler hands a hijacked connection to a ConnFunc.
type RawHandler struct {
	proto string
	fn    ConnFunc
}

// Raw returns an I/O handler that hijacks the connection, writes the
// 101 Switching Protocols response for proto, and hands the stream to fn.
// It panics if proto is empty or fn is nil.
func Raw(proto string, fn ConnFunc) *RawHandler {
	if proto == "" {
		panic(ErrEmptyProtocol)
	}
	if fn == nil {
		panic(ErrNilFunc)
	}
	return &RawHandler{proto: proto, fn: fn}
}

// Protocol returns the Upgrade token the handler answers.
func (h *RawHandler) Protocol() string { return h.proto }

// ServeIO implements handler.IoHandler.
func (h *RawHandler) ServeIO(w http.ResponseWriter, r *http.Request, header http.Header) error {
	conn, rw, err := http.NewResponseController(w).Hijack()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHijackUnsupported, err)
	}
	defer conn.Close()
	// Clear read and write deadlines the HTTP server set.
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return err
	}

	out := header.Clone()
	if out == nil {
		out = http.Header{}
	}
	out.Del("Content-Length")
	out.Set("Connection", "Upgrade")
	out.Set("Upgrade", h.proto)

	if _, err := rw.WriteString("HTTP/1.1 101 Switching Protocols\r\n"); err != nil {
		return err
	}
	if err := out.Write(rw); err != nil {
		return err
	}
	if _, err := rw.WriteString("\r\n"); err != nil {
		return err
	}
	if err := rw.Flush(); err != nil {
		return err
	}

	return h.fn(r.Context(), conn, rw)
}

// Attach registers h as the upgrade for its protocol on resp and returns resp.
func (h *RawHandler) Attach(resp *handler.Response) *handler.Response {
	resp.AddUpgrade(h.proto, h)
	return resp
}

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// Body is the payload of a response: empty, sized, or streamed.
type Body struct {
	reader io.Reader
	size   int64 // -1 when unknown
}

// EmptyBody returns a body with no content and a known size of zero.
func EmptyBody() Body {
	return Body{size: 0}
}

// BytesBody returns a sized body over b.
func BytesBody(b []byte) Body {
	return Body{reader: bytes.NewReader(b), size: int64(len(b))}
}

// SizedBody returns a body of exactly size bytes read from r.
func SizedBody(r io.Reader, size int64) Body {
	return Body{reader: r, size: size}
}

// StreamBody returns a body of unknown size read from r.
func StreamBody(r io.Reader) Body {
	return Body{reader: r, size: -1}
}

// Size returns the body size when it is known.
func (b *Body) Size() (int64, bool) {
	return b.size, b.size >= 0
}

// Reader returns the body content; an empty reader when there is none.
func (b *Body) Reader() io.Reader {
	if b.reader == nil {
		return bytes.NewReader(nil)
	}
	return b.reader
}

// HasContent reports whether the body has content to write.
func (b *Body) HasContent() bool {
	return b.reader != nil
}

// Strip drops the content but keeps the size, so headers describing the
// body stay truthful for HEAD and 304 responses.
func (b *Body) Strip() {
	b.discard()
}

// Clear drops both the content and its size.
func (b *Body) Clear() {
	b.discard()
	b.size = -1
}

func (b *Body) discard() {
	if c, ok := b.reader.(io.Closer); ok {
		_ = c.Close()
	}
	b.reader = nil
}

type upgrade struct {
	protocol string
	handler  IoHandler
}

// Response is a response under construction. Handlers set status, headers,
// and body; Content-Length, Server, and Set-Cookie are added by the engine.
type Response struct {
	Status   int
	Header   http.Header
	body     Body
	upgrades []upgrade
}

// NewResponse creates a response with status and an empty body.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Header: http.Header{},
		body:   EmptyBody(),
	}
}

// Text creates a text/plain response.
func Text(status int, s string) *Response {
	return Bytes(status, "text/plain; charset=utf-8", []byte(s))
}

// HTML creates a text/html response.
func HTML(status int, s string) *Response {
	return Bytes(status, "text/html; charset=utf-8", []byte(s))
}

// Bytes creates a response with a sized body of contentType.
func Bytes(status int, contentType string, b []byte) *Response {
	r := NewResponse(status)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.body = BytesBody(b)
	return r
}

// JSON creates an application/json response from v.
func JSON(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json response: %w", err)
	}
	return Bytes(status, "application/json", b), nil
}

// Stream creates a response streaming r with unknown size.
func Stream(status int, contentType string, r io.Reader) *Response {
	resp := NewResponse(status)
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	resp.body = StreamBody(r)
	return resp
}

// Body returns the response body.
func (r *Response) Body() *Body { return &r.body }

// SetBody replaces the response body.
func (r *Response) SetBody(b Body) { r.body = b }

// AddUpgrade registers h to take over the connection if the client asks
// to upgrade to protocol. Registration order is preference order.
func (r *Response) AddUpgrade(protocol string, h IoHandler) {
	r.upgrades = append(r.upgrades, upgrade{protocol: protocol, handler: h})
}

// HasUpgrades reports whether any upgrade is registered.
func (r *Response) HasUpgrades() bool {
	return len(r.upgrades) > 0
}

// SearchUpgrade returns the first protocol requested in the Upgrade header
// values that has a registered handler.
func (r *Response) SearchUpgrade(requested []string) (string, IoHandler, bool) {
	for _, value := range requested {
		for token := range strings.SplitSeq(value, ",") {
			proto := strings.TrimSpace(token)
			if proto == "" {
				continue
			}
			i := slices.IndexFunc(r.upgrades, func(u upgrade) bool {
				return strings.EqualFold(u.protocol, proto)
			})
			if i >= 0 {
				return r.upgrades[i].protocol, r.upgrades[i].handler, true
			}
		}
	}
	return "", nil, false
}

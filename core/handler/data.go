package handler

import (
	"bufio"
	"io"
	"strings"
)

// peekCapacity bounds Peek and is the buffer size of the body reader.
const peekCapacity = 4096

// Data is the body of a request. It is read at most once; ownership passes
// from route to route through Forward so that a later route can still read
// whatever an earlier one left unconsumed.
type Data struct {
	r      *bufio.Reader
	closer io.Closer
}

// NewData wraps body. A nil body yields empty data.
func NewData(body io.ReadCloser) *Data {
	if body == nil {
		return &Data{r: bufio.NewReaderSize(strings.NewReader(""), peekCapacity)}
	}
	return &Data{
		r:      bufio.NewReaderSize(body, peekCapacity),
		closer: body,
	}
}

// DataFromString returns data reading s. Useful in tests.
func DataFromString(s string) *Data {
	return NewData(io.NopCloser(strings.NewReader(s)))
}

// Peek returns up to n bytes from the start of the unread body without
// consuming them. Fewer bytes are returned when the body is shorter.
func (d *Data) Peek(n int) []byte {
	if n > peekCapacity {
		n = peekCapacity
	}
	b, _ := d.r.Peek(n)
	return b
}

// Read implements io.Reader.
func (d *Data) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

// Open returns a reader over at most limit bytes of the body.
// A non-positive limit means no limit.
func (d *Data) Open(limit int64) io.Reader {
	if limit <= 0 {
		return d.r
	}
	return io.LimitReader(d.r, limit)
}

// Close closes the underlying body.
func (d *Data) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

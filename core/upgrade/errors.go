package upgrade

import "errors"

var (
	ErrHijackUnsupported = errors.New("upgrade: response writer does not support hijacking")
	ErrHandshakeFailed   = errors.New("upgrade: websocket handshake failed")
	ErrEmptyProtocol     = errors.New("upgrade: protocol must not be empty")
	ErrNilFunc           = errors.New("upgrade: connection func must not be nil")
)

package dispatch

const (
	// DefaultIdent is the default value of the Server header.
	DefaultIdent = "Rocket"

	// DefaultRequestIDHeader carries a client-supplied request ID.
	DefaultRequestIDHeader = "X-Request-Id"

	// DefaultIPHeader carries the real client IP behind a reverse proxy.
	DefaultIPHeader = "X-Real-IP"

	// methodPeekSize bounds the body prefix inspected for a _method field.
	methodPeekSize = 32

	// maxCatcherAttempts is the number of catcher invocations before the
	// built-in default answers: the status catcher, then the 500 catcher.
	maxCatcherAttempts = 2

	tracerName = "github.com/yonasBSD/Rocket/core/dispatch"
)

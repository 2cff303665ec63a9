// Package outcome provides the tri-state result shared by route handlers,
// request guards, and the dispatch loop.
//
// An Outcome is exactly one of:
//
//   - Success: processing completed with a value.
//   - Error: processing failed; the value describes the failure.
//   - Forward: the producer declined the input; the value hands the
//     unconsumed input back so the next candidate can try.
//
// Forwarding is explicit instead of being signaled by sentinel values or
// errors:
//
//	func handle(req *Request) outcome.Outcome[string, int, *Request] {
//		if req.Header.Get("X-Admin") == "" {
//			return outcome.Forward[string, int](req)
//		}
//		return outcome.Success[string, int, *Request]("hello admin")
//	}
package outcome

import "fmt"

// Kind identifies the active variant of an Outcome.
type Kind uint8

const (
	// KindSuccess marks a successful outcome.
	KindSuccess Kind = iota + 1
	// KindError marks a failed outcome.
	KindError
	// KindForward marks a forwarded outcome.
	KindForward
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Outcome is a value that is either a success S, an error E, or a forward F.
// The zero value is not a valid outcome; use the constructors.
type Outcome[S, E, F any] struct {
	kind    Kind
	success S
	err     E
	forward F
}

// Success returns a successful outcome holding v.
func Success[S, E, F any](v S) Outcome[S, E, F] {
	return Outcome[S, E, F]{kind: KindSuccess, success: v}
}

// Error returns a failed outcome holding e.
func Error[S, E, F any](e E) Outcome[S, E, F] {
	return Outcome[S, E, F]{kind: KindError, err: e}
}

// Forward returns a forwarded outcome holding f.
func Forward[S, E, F any](f F) Outcome[S, E, F] {
	return Outcome[S, E, F]{kind: KindForward, forward: f}
}

// Kind returns the active variant.
func (o Outcome[S, E, F]) Kind() Kind { return o.kind }

// IsSuccess reports whether o is a Success.
func (o Outcome[S, E, F]) IsSuccess() bool { return o.kind == KindSuccess }

// IsError reports whether o is an Error.
func (o Outcome[S, E, F]) IsError() bool { return o.kind == KindError }

// IsForward reports whether o is a Forward.
func (o Outcome[S, E, F]) IsForward() bool { return o.kind == KindForward }

// SuccessValue returns the success value and true if o is a Success.
func (o Outcome[S, E, F]) SuccessValue() (S, bool) {
	return o.success, o.kind == KindSuccess
}

// ErrorValue returns the error value and true if o is an Error.
func (o Outcome[S, E, F]) ErrorValue() (E, bool) {
	return o.err, o.kind == KindError
}

// ForwardValue returns the forward value and true if o is a Forward.
func (o Outcome[S, E, F]) ForwardValue() (F, bool) {
	return o.forward, o.kind == KindForward
}

// String implements fmt.Stringer.
func (o Outcome[S, E, F]) String() string {
	switch o.kind {
	case KindSuccess:
		return fmt.Sprintf("Success(%v)", o.success)
	case KindError:
		return fmt.Sprintf("Error(%v)", o.err)
	case KindForward:
		return fmt.Sprintf("Forward(%v)", o.forward)
	default:
		return "Outcome(invalid)"
	}
}

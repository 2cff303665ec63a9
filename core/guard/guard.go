package guard

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/yonasBSD/Rocket/core/logger"
)

// PanicError exposes a recovered panic to error handlers and tests.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to see through panics with an error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

// Run calls fn and returns its result with ok set to true. If fn panics, the
// panic is logged as an error tagged with name and Run returns the zero T
// and false. Nothing escapes Run.
func Run[T any](ctx context.Context, log *slog.Logger, name string, fn func() T) (T, bool) {
	v, err := Try(fn)
	if err != nil {
		report(ctx, log, name, err)
		return v, false
	}
	return v, true
}

// Do is Run for functions without a result.
func Do(ctx context.Context, log *slog.Logger, name string, fn func()) bool {
	_, ok := Run(ctx, log, name, func() struct{} {
		fn()
		return struct{}{}
	})
	return ok
}

// Try calls fn and converts a panic into a PanicError.
func Try[T any](fn func() T) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			v = zero
			err = &panicError{value: p, stack: debug.Stack()}
		}
	}()
	return fn(), nil
}

func report(ctx context.Context, log *slog.Logger, name string, err error) {
	if log == nil {
		return
	}
	attrs := []any{logger.Handler(name), logger.Error(err)}
	if pe, ok := err.(PanicError); ok {
		attrs = append(attrs, logger.Panic(pe.Value()), logger.StackTrace(pe.Stack()))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log.ErrorContext(ctx, "handler panicked", attrs...)
}

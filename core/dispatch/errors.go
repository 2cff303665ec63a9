package dispatch

import "errors"

var (
	ErrNilRouter       = errors.New("nil router")
	ErrCatcherPanicked = errors.New("catcher panicked")
	ErrCatcherFailed   = errors.New("catcher failed")
	ErrNilResponse     = errors.New("nil response")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrUpgradeFailed   = errors.New("upgrade i/o handler failed")
)

package fairing

import "errors"

var (
	ErrNilFairing      = errors.New("nil fairing")
	ErrMissingCallback = errors.New("fairing does not implement declared callback")
)

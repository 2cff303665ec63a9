package app

import "errors"

var (
	ErrInvalidLogLevel = errors.New("app: invalid log level")
	ErrInvalidEnv      = errors.New("app: unknown environment")
	ErrNilOption       = errors.New("app: option value cannot be nil")
)

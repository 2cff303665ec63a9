package router

import "errors"

var (
	// Registration errors
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidRegexp    = errors.New("invalid route path pattern regexp")
	ErrWildcardPosition = errors.New("wildcard position must be last")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidFormat    = errors.New("invalid route format")
	ErrInvalidStatus    = errors.New("catcher status must be between 400 and 599")
	ErrNilHandler       = errors.New("nil handler")

	// Lifecycle errors
	ErrFrozen       = errors.New("router is finalized; routes and catchers can no longer be added")
	ErrNotFinalized = errors.New("router must be finalized before routing")
)

package binder

import "errors"

var (
	// ErrUnsupportedMediaType indicates the Content-Type names a media type
	// the binder does not decode. Handlers built with Handler forward on it.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType indicates the request lacks a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrPayloadTooLarge indicates the body exceeds the binder's limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	ErrFailedToParseJSON  = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm  = errors.New("failed to parse form data")
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
	ErrFailedToParsePath  = errors.New("failed to parse path parameters")

	// ErrInvalidTarget indicates v is not a non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")

	// ErrValidation wraps the error returned by a Validator.
	ErrValidation = errors.New("validation failed")
)

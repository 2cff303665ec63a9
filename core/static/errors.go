package static

import "errors"

var (
	ErrNotDirectory = errors.New("static: root is not a directory")
	ErrNotFile      = errors.New("static: path is not a regular file")
	ErrInvalidPath  = errors.New("static: invalid request path")
)

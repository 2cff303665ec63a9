package static

import "net/http"

// Option configures a FileServer.
type Option func(*FileServer)

// WithRank sets the rank of the generated route. Defaults to DefaultRank so
// that explicit routes sharing the prefix are tried first.
func WithRank(rank int) Option {
	return func(s *FileServer) {
		s.rank = rank
	}
}

// WithIndex sets the file served for directory requests. An empty name
// disables index files; directories then forward.
func WithIndex(name string) Option {
	return func(s *FileServer) {
		s.index = name
	}
}

// WithDotfiles serves files and directories whose name starts with a dot.
// They are hidden by default.
func WithDotfiles() Option {
	return func(s *FileServer) {
		s.dotfiles = true
	}
}

// WithoutDirRedirect disables redirecting directory requests without a
// trailing slash to the slashed path.
func WithoutDirRedirect() Option {
	return func(s *FileServer) {
		s.redirectDirs = false
	}
}

// WithHeader adds a header to every file response, e.g. Cache-Control.
func WithHeader(key, value string) Option {
	return func(s *FileServer) {
		if s.headers == nil {
			s.headers = http.Header{}
		}
		s.headers.Add(key, value)
	}
}

// WithName sets the name of the generated route, used in logs.
func WithName(name string) Option {
	return func(s *FileServer) {
		s.name = name
	}
}

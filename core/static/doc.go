// Package static serves files from an fs.FS as a route.
//
// A FileServer is a handler that answers GET requests below the path it is
// mounted at:
//
//	files := static.Dir("./public", static.WithHeader("Cache-Control", "max-age=3600"))
//	r.Mount("/assets", files.Route())
//
// Requests for missing files, hidden dotfiles, or paths that try to escape
// the root forward with 404 so that lower ranked routes can still answer.
// Directory requests without a trailing slash are redirected; with one, the
// index file is served. The route is ranked DefaultRank, after the default
// ranks of explicit routes.
//
// Content-Type is derived from the file extension, and If-Modified-Since is
// answered with 304 Not Modified.
package static

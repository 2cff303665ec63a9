package static

import (
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/router"
)

// DefaultRank is the rank of file server routes unless WithRank is given.
const DefaultRank = 10

// FileServer serves files from a file system as a catch-all GET route.
// Requests for missing or hidden files forward with 404, so later routes and
// the 404 catcher still see them.
type FileServer struct {
	fsys         fs.FS
	name         string
	rank         int
	index        string
	dotfiles     bool
	redirectDirs bool
	headers      http.Header
}

// New creates a FileServer over fsys. It panics if the root of fsys is not a
// readable directory.
func New(fsys fs.FS, opts ...Option) *FileServer {
	s := &FileServer{
		fsys:         fsys,
		name:         "FileServer",
		rank:         DefaultRank,
		index:        "index.html",
		redirectDirs: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	info, err := fs.Stat(fsys, ".")
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrNotDirectory, err))
	}
	if !info.IsDir() {
		panic(ErrNotDirectory)
	}
	return s
}

// Dir creates a FileServer over the directory root. It panics if root is not
// a directory.
func Dir(root string, opts ...Option) *FileServer {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		panic(fmt.Errorf("%w: %s", ErrNotDirectory, root))
	}
	return New(os.DirFS(root), opts...)
}

// Sub creates a FileServer over the dir subtree of fsys, such as a directory
// inside an embed.FS.
func Sub(fsys fs.FS, dir string, opts ...Option) *FileServer {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrNotDirectory, dir, err))
	}
	return New(sub, opts...)
}

// Route returns the GET route serving the file system. Mount it under the
// URL prefix the files live at:
//
//	r.Mount("/assets", static.Dir("./public").Route())
func (s *FileServer) Route() *router.Route {
	return router.Get("/*", s, router.WithRank(s.rank), router.WithName(s.name))
}

// Handle implements handler.Handler.
func (s *FileServer) Handle(req *handler.Request, data *handler.Data) handler.Outcome {
	name, err := cleanPath(req.Param("*"))
	if err != nil || (!s.dotfiles && hidden(name)) {
		return handler.NotFound(data)
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return handler.NotFound(data)
	}

	if info.IsDir() {
		if s.redirectDirs && !strings.HasSuffix(req.Path(), "/") {
			return handler.Success(redirect(req))
		}
		if s.index == "" {
			return handler.NotFound(data)
		}
		name = path.Join(name, s.index)
		if info, err = fs.Stat(s.fsys, name); err != nil || info.IsDir() {
			return handler.NotFound(data)
		}
	}

	if !info.Mode().IsRegular() {
		return handler.NotFound(data)
	}

	resp, err := s.serve(req, name, info)
	if err != nil {
		return handler.NotFound(data)
	}
	return handler.Success(resp)
}

func (s *FileServer) serve(req *handler.Request, name string, info fs.FileInfo) (*handler.Response, error) {
	modified := info.ModTime()

	var resp *handler.Response
	if notModified(req, modified) {
		resp = handler.NewResponse(http.StatusNotModified)
	} else {
		f, err := s.fsys.Open(name)
		if err != nil {
			return nil, err
		}
		resp = handler.NewResponse(http.StatusOK)
		resp.Header.Set("Content-Type", contentType(name))
		resp.SetBody(handler.SizedBody(f, info.Size()))
	}

	if !modified.IsZero() {
		resp.Header.Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	}
	for k, vs := range s.headers {
		for _, v := range vs {
			resp.Header.Add(k, v)
		}
	}
	return resp, nil
}

// cleanPath turns a captured URL tail into an fs.FS path. Segments that try
// to leave the root are rejected rather than resolved.
func cleanPath(tail string) (string, error) {
	tail = strings.Trim(tail, "/")
	if tail == "" {
		return ".", nil
	}
	for seg := range strings.SplitSeq(tail, "/") {
		if seg == ".." || strings.ContainsRune(seg, '\\') {
			return "", ErrInvalidPath
		}
	}
	name := path.Clean(tail)
	if !fs.ValidPath(name) {
		return "", ErrInvalidPath
	}
	return name, nil
}

func hidden(name string) bool {
	if name == "." {
		return false
	}
	for seg := range strings.SplitSeq(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func notModified(req *handler.Request, modified time.Time) bool {
	if modified.IsZero() {
		return false
	}
	since := req.Header().Get("If-Modified-Since")
	if since == "" {
		return false
	}
	t, err := http.ParseTime(since)
	if err != nil {
		return false
	}
	return !modified.Truncate(time.Second).After(t)
}

func redirect(req *handler.Request) *handler.Response {
	target := req.Path() + "/"
	if q := req.URL().RawQuery; q != "" {
		target += "?" + q
	}
	resp := handler.NewResponse(http.StatusTemporaryRedirect)
	resp.Header.Set("Location", target)
	return resp
}

var _ handler.Handler = (*FileServer)(nil)

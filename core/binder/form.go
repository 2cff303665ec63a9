package binder

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"path"
	"reflect"
	"strings"

	"github.com/yonasBSD/Rocket/core/handler"
)

const (
	// DefaultFormLimit is the default maximum size of a form body (10MB).
	DefaultFormLimit = 10 << 20

	// DefaultMaxMemory is the part of a multipart form kept in memory;
	// larger files spill to disk.
	DefaultMaxMemory = 10 << 20
)

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

// Form decodes application/x-www-form-urlencoded and multipart/form-data
// bodies into v. A non-positive limit means DefaultFormLimit.
//
// Supported struct tags:
//   - `form:"name"` binds form field "name"
//   - `file:"name"` binds uploaded file "name" to a *multipart.FileHeader
//     or []*multipart.FileHeader
//   - `form:"-"` skips the field
func Form(limit int64) Binder {
	if limit <= 0 {
		limit = DefaultFormLimit
	}
	return func(req *handler.Request, data *handler.Data, v any) error {
		ct, ok := req.ContentType()
		if !ok {
			return fmt.Errorf("%w: expected a form", ErrMissingContentType)
		}
		if !ct.IsForm() {
			return fmt.Errorf("%w: got %s, expected a form", ErrUnsupportedMediaType, ct)
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		if ct.Subtype == "form-data" {
			_, params, err := mime.ParseMediaType(req.Header().Get("Content-Type"))
			if err != nil || !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid multipart boundary", ErrFailedToParseForm)
			}
			form, err := multipart.NewReader(limitedBody(data, limit), params["boundary"]).ReadForm(DefaultMaxMemory)
			if err != nil {
				if errors.Is(err, ErrPayloadTooLarge) {
					return fmt.Errorf("%w: max %d bytes", ErrPayloadTooLarge, limit)
				}
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values, files = form.Value, form.File
		} else {
			body, err := io.ReadAll(data.Open(limit + 1))
			if err != nil {
				return fmt.Errorf("%w: reading body: %w", ErrFailedToParseForm, err)
			}
			if int64(len(body)) > limit {
				return fmt.Errorf("%w: max %d bytes", ErrPayloadTooLarge, limit)
			}
			values, err = url.ParseQuery(string(body))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
		}

		return eachField(v, ErrFailedToParseForm, func(field reflect.Value, sf reflect.StructField) error {
			if name, ok := tagName(sf, "form"); ok {
				if vals := values[name]; len(vals) > 0 {
					return setField(field, sf.Type, vals)
				}
			}
			if name := sf.Tag.Get("file"); name != "" && name != "-" {
				if fhs := files[name]; len(fhs) > 0 {
					return setFiles(field, sf.Type, fhs)
				}
			}
			return nil
		})
	}
}

func setFiles(field reflect.Value, t reflect.Type, fhs []*multipart.FileHeader) error {
	for _, fh := range fhs {
		fh.Filename = sanitizeFilename(fh.Filename)
	}
	switch {
	case t == fileHeaderType:
		field.Set(reflect.ValueOf(fhs[0]))
	case t.Kind() == reflect.Slice && t.Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(fhs))
	default:
		return fmt.Errorf("unsupported type %s for file field", t)
	}
	return nil
}

// sanitizeFilename keeps the base name of an uploaded file only.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "unnamed"
	}
	return name
}

func validBoundary(boundary string) bool {
	return boundary != "" && len(boundary) <= 100 && !strings.ContainsAny(boundary, "\x00\r\n")
}

// limitedBody fails with ErrPayloadTooLarge once more than limit bytes are read.
func limitedBody(data *handler.Data, limit int64) io.Reader {
	return &limitReader{r: data.Open(limit + 1), left: limit}
}

type limitReader struct {
	r    io.Reader
	left int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		return n, ErrPayloadTooLarge
	}
	return n, err
}

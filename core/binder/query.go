package binder

import (
	"reflect"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Query binds query parameters into v using `query:"name"` tags. Untagged
// fields bind the lowercased field name. Slices take repeated or
// comma-separated values: ?tags=go&tags=web or ?tags=go,web.
func Query() Binder {
	return func(req *handler.Request, _ *handler.Data, v any) error {
		values := req.URL().Query()
		return eachField(v, ErrFailedToParseQuery, func(field reflect.Value, sf reflect.StructField) error {
			name, ok := tagName(sf, "query")
			if !ok {
				return nil
			}
			if vals := values[name]; len(vals) > 0 {
				return setField(field, sf.Type, vals)
			}
			return nil
		})
	}
}

// Path binds parameters captured by the route pattern into v using
// `path:"name"` tags. The multi-segment capture of a "/*" pattern is named
// "*".
func Path() Binder {
	return func(req *handler.Request, _ *handler.Data, v any) error {
		return eachField(v, ErrFailedToParsePath, func(field reflect.Value, sf reflect.StructField) error {
			name, ok := tagName(sf, "path")
			if !ok {
				return nil
			}
			if val := req.Param(name); val != "" {
				return setField(field, sf.Type, []string{val})
			}
			return nil
		})
	}
}

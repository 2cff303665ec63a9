package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yonasBSD/Rocket/core/handler"
)

// DefaultJSONLimit is the default maximum size of a JSON body (1MB).
const DefaultJSONLimit = 1 << 20

// JSON decodes an application/json body into v. Unknown fields and trailing
// data are rejected, and string fields are sanitized. A non-positive limit
// means DefaultJSONLimit.
func JSON(limit int64) Binder {
	if limit <= 0 {
		limit = DefaultJSONLimit
	}
	return func(req *handler.Request, data *handler.Data, v any) error {
		ct, ok := req.ContentType()
		if !ok {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		if !ct.IsJSON() {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
		}
		if err := req.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		body, err := io.ReadAll(data.Open(limit + 1))
		if err != nil {
			return fmt.Errorf("%w: reading body: %w", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > limit {
			return fmt.Errorf("%w: max %d bytes", ErrPayloadTooLarge, limit)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}

		sanitize(v)
		return nil
	}
}

package handler

import (
	"mime"
	"strconv"
	"strings"
)

// MediaType is a parsed media type such as "application/json".
// "*" in either part is a wildcard.
type MediaType struct {
	Type    string
	Subtype string
}

// ParseMediaType parses s, ignoring parameters. Shorthands "json", "html",
// "text", "form", "xml", "msgpack", "any" are accepted for route formats.
func ParseMediaType(s string) (MediaType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MediaType{}, false
	}
	if full, ok := shorthands[strings.ToLower(s)]; ok {
		s = full
	}

	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, false
	}

	typ, sub, ok := strings.Cut(mt, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, false
	}
	return MediaType{Type: typ, Subtype: sub}, true
}

var shorthands = map[string]string{
	"*":       "*/*",
	"any":     "*/*",
	"json":    "application/json",
	"html":    "text/html",
	"text":    "text/plain",
	"plain":   "text/plain",
	"form":    "application/x-www-form-urlencoded",
	"xml":     "text/xml",
	"msgpack": "application/msgpack",
	"binary":  "application/octet-stream",
}

// String returns "type/subtype".
func (m MediaType) String() string {
	if m.Type == "" {
		return ""
	}
	return m.Type + "/" + m.Subtype
}

// IsZero reports whether m is unset.
func (m MediaType) IsZero() bool {
	return m.Type == ""
}

// Specific reports whether neither part is a wildcard.
func (m MediaType) Specific() bool {
	return !m.IsZero() && m.Type != "*" && m.Subtype != "*"
}

// Collides reports whether m and other could describe the same content.
func (m MediaType) Collides(other MediaType) bool {
	return partCollides(m.Type, other.Type) && partCollides(m.Subtype, other.Subtype)
}

// IsForm reports whether m is an URL-encoded or multipart form.
func (m MediaType) IsForm() bool {
	return m.Type == "application" && m.Subtype == "x-www-form-urlencoded" ||
		m.Type == "multipart" && m.Subtype == "form-data"
}

// IsJSON reports whether m is application/json.
func (m MediaType) IsJSON() bool {
	return m.Type == "application" && m.Subtype == "json"
}

func partCollides(a, b string) bool {
	return a == "*" || b == "*" || a == b
}

// preferredAccept returns the highest-quality media type of an Accept header.
// Ties keep header order.
func preferredAccept(accept string) (MediaType, bool) {
	var (
		best  MediaType
		bestQ = -1.0
	)
	for part := range strings.SplitSeq(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		parsed, ok := ParseMediaType(mt)
		if !ok {
			continue
		}
		q := parseQuality(params["q"])
		if q > bestQ {
			best, bestQ = parsed, q
		}
	}
	return best, bestQ >= 0
}

func parseQuality(s string) float64 {
	if s == "" {
		return 1
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || q < 0 || q > 1 {
		return 0
	}
	return q
}

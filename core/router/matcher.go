package router

import (
	"fmt"
	"regexp"
	"strings"
)

type segmentTyp uint8

const (
	segStatic   segmentTyp = iota // /home
	segRegexp                     // /{id:[0-9]+}
	segParam                      // /{user}
	segCatchAll                   // /files/*
)

type segment struct {
	typ segmentTyp

	// value is the literal text of a static segment or the parameter key.
	value string

	rex *regexp.Regexp
}

// matcher matches request paths against a route pattern one segment at a time.
type matcher struct {
	pattern  string
	segments []segment
}

func parsePattern(pattern string) (*matcher, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	parts := splitPath(pattern)
	segs := make([]segment, 0, len(parts))
	seen := make(map[string]bool)

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w in '%s'", err, pattern)
		}
		if seg.typ == segCatchAll && i != len(parts)-1 {
			return nil, fmt.Errorf("%w in '%s'", ErrWildcardPosition, pattern)
		}
		if seg.typ != segStatic {
			if seen[seg.value] {
				return nil, fmt.Errorf("%w '%s' in '%s'", ErrDuplicateParam, seg.value, pattern)
			}
			seen[seg.value] = true
		}
		segs = append(segs, seg)
	}

	return &matcher{pattern: pattern, segments: segs}, nil
}

func parseSegment(part string) (segment, error) {
	if part == "*" {
		return segment{typ: segCatchAll, value: "*"}, nil
	}
	if strings.Contains(part, "*") {
		return segment{}, ErrWildcardPosition
	}
	if !strings.HasPrefix(part, "{") {
		if strings.ContainsAny(part, "{}") {
			return segment{}, ErrInvalidPattern
		}
		return segment{typ: segStatic, value: part}, nil
	}
	if !strings.HasSuffix(part, "}") {
		return segment{}, ErrInvalidPattern
	}

	key, rexpat, isRegexp := strings.Cut(part[1:len(part)-1], ":")
	if key == "" {
		return segment{}, ErrInvalidPattern
	}
	if !isRegexp {
		return segment{typ: segParam, value: key}, nil
	}

	if len(rexpat) == 0 || rexpat[0] != '^' {
		rexpat = "^" + rexpat
	}
	if rexpat[len(rexpat)-1] != '$' {
		rexpat += "$"
	}
	rex, err := regexp.Compile(rexpat)
	if err != nil {
		return segment{}, fmt.Errorf("%w: %s", ErrInvalidRegexp, rexpat)
	}
	return segment{typ: segRegexp, value: key, rex: rex}, nil
}

// splitPath returns the segments of path after its leading slash.
// "/" yields a single empty segment.
func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// match returns the parameters captured from the decoded path segments.
func (m *matcher) match(parts []string) (map[string]string, bool) {
	var params map[string]string

	capture := func(key, value string) {
		if params == nil {
			params = make(map[string]string, len(m.segments))
		}
		params[key] = value
	}

	for i, seg := range m.segments {
		if seg.typ == segCatchAll {
			capture(seg.value, strings.Join(parts[i:], "/"))
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}

		part := parts[i]
		switch seg.typ {
		case segStatic:
			if part != seg.value {
				return nil, false
			}
		case segParam:
			if part == "" {
				return nil, false
			}
			capture(seg.value, part)
		case segRegexp:
			if part == "" || !seg.rex.MatchString(part) {
				return nil, false
			}
			capture(seg.value, part)
		}
	}

	if len(parts) != len(m.segments) {
		return nil, false
	}
	return params, true
}

// collides reports whether some path could match both m and o.
func (m *matcher) collides(o *matcher) bool {
	a, b := m.segments, o.segments
	for i := 0; ; i++ {
		if i == len(a) && i == len(b) {
			return true
		}
		if i < len(a) && a[i].typ == segCatchAll || i < len(b) && b[i].typ == segCatchAll {
			return true
		}
		if i == len(a) || i == len(b) {
			return false
		}
		if a[i].typ == segStatic && b[i].typ == segStatic && a[i].value != b[i].value {
			return false
		}
	}
}

// defaultRank orders fully static patterns first and fully dynamic ones last.
func (m *matcher) defaultRank() int {
	dynamic := 0
	for _, seg := range m.segments {
		if seg.typ != segStatic {
			dynamic++
		}
	}
	switch {
	case dynamic == 0:
		return -3
	case dynamic < len(m.segments):
		return -2
	default:
		return -1
	}
}

// joinPath mounts pattern under base.
func joinPath(base, pattern string) string {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return pattern
	}
	if pattern == "/" {
		return base
	}
	return base + pattern
}

package handler

import (
	"net/http"
	"strings"
)

// MethodAny matches every request method when used as a route method.
const MethodAny = "*"

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// ParseMethod returns the canonical form of a standard HTTP method, ignoring case.
func ParseMethod(s string) (string, bool) {
	for _, m := range knownMethods {
		if strings.EqualFold(s, m) {
			return m, true
		}
	}
	return "", false
}

// AllowsBody reports whether requests with method carry a payload whose
// Content-Type describes the request format.
func AllowsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

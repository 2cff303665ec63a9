package catcher

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/yonasBSD/Rocket/core/handler"
)

// Ident is the footer of the default HTML page.
const Ident = "Rocket"

// Precompiled once; executing it cannot fail for the page data below.
var pageTemplate = template.Must(template.New("catcher").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="color-scheme" content="light dark">
    <title>{{.Code}} {{.Reason}}</title>
</head>
<body align="center">
    <div role="main" align="center">
        <h1>{{.Code}}: {{.Reason}}</h1>
        <p>{{.Description}}</p>
        <hr />
    </div>
    <div role="contentinfo" align="center">
        <small>{{.Ident}}</small>
    </div>
</body>
</html>
`))

type page struct {
	Code        int    `json:"code"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
	Ident       string `json:"-"`
}

// Default renders the built-in error response for status. Clients that
// prefer JSON get a JSON document, everyone else an HTML page. Default never
// fails and always answers with status itself; unknown or invalid codes are
// reported as 500.
func Default(status int, req *handler.Request) *handler.Response {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	p := page{
		Code:        status,
		Reason:      http.StatusText(status),
		Description: Description(status),
		Ident:       Ident,
	}

	if prefersJSON(req) {
		b, err := json.Marshal(map[string]page{"error": p})
		if err == nil {
			return handler.Bytes(status, "application/json", b)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return handler.Text(status, p.Reason)
	}
	return handler.Bytes(status, "text/html; charset=utf-8", buf.Bytes())
}

// Handler is Default as an error handler, for registering it explicitly.
var Handler handler.ErrorHandler = handler.ErrorHandlerFunc(
	func(status int, req *handler.Request) (*handler.Response, error) {
		return Default(status, req), nil
	},
)

func prefersJSON(req *handler.Request) bool {
	if req == nil {
		return false
	}
	if accept, ok := req.Accept(); ok {
		return accept.IsJSON()
	}
	ct, ok := req.ContentType()
	return ok && ct.IsJSON()
}

var descriptions = map[int]string{
	http.StatusBadRequest:                   "The request could not be understood by the server due to malformed syntax.",
	http.StatusUnauthorized:                 "The request requires user authentication.",
	http.StatusPaymentRequired:              "The request could not be processed due to lack of payment.",
	http.StatusForbidden:                    "The server refused to authorize the request.",
	http.StatusNotFound:                     "The requested resource could not be found.",
	http.StatusMethodNotAllowed:             "The request method is not supported for the requested resource.",
	http.StatusNotAcceptable:                "The requested resource is capable of generating only content not acceptable according to the Accept headers sent in the request.",
	http.StatusProxyAuthRequired:            "Authentication with the proxy is required.",
	http.StatusRequestTimeout:               "The server timed out waiting for the request.",
	http.StatusConflict:                     "The request could not be processed because of a conflict in the request.",
	http.StatusGone:                         "The resource requested is no longer available and will not be available again.",
	http.StatusLengthRequired:               "The request did not specify the length of its content, which is required by the requested resource.",
	http.StatusPreconditionFailed:           "The server does not meet one of the preconditions specified in the request.",
	http.StatusRequestEntityTooLarge:        "The request is larger than the server is willing or able to process.",
	http.StatusRequestURITooLong:            "The URI provided was too long for the server to process.",
	http.StatusUnsupportedMediaType:         "The request entity has a media type which the server or resource does not support.",
	http.StatusRequestedRangeNotSatisfiable: "The portion of the requested file cannot be supplied by the server.",
	http.StatusExpectationFailed:            "The server cannot meet the requirements of the expect request-header field.",
	http.StatusTeapot:                       "I was requested to brew coffee, and I am a teapot.",
	http.StatusMisdirectedRequest:           "The server cannot produce a response for this request.",
	http.StatusUnprocessableEntity:          "The request was well-formed but was unable to be followed due to semantic errors.",
	http.StatusUpgradeRequired:              "Switching to the protocol in the Upgrade header field is required.",
	http.StatusPreconditionRequired:         "The server requires the request to be conditional.",
	http.StatusTooManyRequests:              "Too many requests have been received recently.",
	http.StatusRequestHeaderFieldsTooLarge:  "The server is unwilling to process the request because either an individual header field, or all the header fields collectively, are too large.",
	http.StatusUnavailableForLegalReasons:   "The requested resource is unavailable due to a legal demand to deny access to this resource.",
	http.StatusInternalServerError:          "The server encountered an internal error while processing this request.",
	http.StatusNotImplemented:               "The server either does not recognize the request method, or it lacks the ability to fulfill the request.",
	http.StatusBadGateway:                   "Received an invalid response from an inbound server it accessed while attempting to fulfill the request.",
	http.StatusServiceUnavailable:           "The server is currently unavailable.",
	http.StatusGatewayTimeout:               "The server did not receive a timely response from an upstream server.",
	http.StatusHTTPVersionNotSupported:      "The server does not support the HTTP protocol version used in the request.",
}

// Description returns a human-readable explanation of status.
func Description(status int) string {
	if d, ok := descriptions[status]; ok {
		return d
	}
	switch {
	case status >= 400 && status < 500:
		return "The request could not be processed due to a client error."
	case status >= 500 && status < 600:
		return "The server failed to process the request."
	}
	return "An unknown error has occurred."
}

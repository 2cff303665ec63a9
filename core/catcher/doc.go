// Package catcher provides the built-in error response used when no
// registered catcher handles a failure, or when catchers themselves fail.
//
// Default picks the representation from the request: a JSON document for
// clients that prefer application/json, an HTML page otherwise.
//
//	{"error":{"code":404,"reason":"Not Found","description":"The requested resource could not be found."}}
package catcher

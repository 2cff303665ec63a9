// Package dispatch is the request dispatch engine: it takes a parsed request,
// finds the route that answers it, recovers from failures through catchers,
// and finalizes the response.
//
// # Lifecycle
//
// Every request goes through the same steps:
//
//  1. Preprocess: a form POST whose first field is _method may change the
//     method, then request fairings run. Preprocess returns the RequestToken
//     that Dispatch takes.
//  2. Routing: matching routes are tried in rank order. A route may
//     succeed, fail with a status, or forward to the next route. Panics are
//     recovered and become 500 errors.
//  3. HEAD fallback: a HEAD request nobody accepted is routed once more as GET.
//  4. Catching: failures are rendered by the catcher for the status. When
//     that catcher fails, the 500 catcher runs; when it fails too, the
//     built-in default answers. Cookies set by failed routes are dropped.
//  5. Finalizing: cookie changes become Set-Cookie headers, the Server header
//     is added, response fairings run, and body and length headers are fixed
//     up for HEAD, 204, and 304 responses.
//
// Dispatch always returns a response.
//
// # Basic Usage
//
//	r := router.New()
//	r.Mount("/", router.Get("/", handler.Func(index)))
//
//	engine := dispatch.New(r,
//		dispatch.WithLogger(log),
//		dispatch.WithFairings(fairings),
//		dispatch.WithCookieManager(cookies),
//	)
//
//	http.ListenAndServe(":8000", engine)
//
// Without the http.Handler adapter:
//
//	token := engine.Preprocess(req, data)
//	resp := engine.Dispatch(token, req, data)
//
// # Upgrades
//
// A response may register protocol handlers with AddUpgrade. When the request
// asks for one of them, ServeHTTP switches protocols and hands the connection
// to that handler; see package upgrade.
//
// # Tracing
//
// Routing and catching each run inside an OpenTelemetry span named "routing"
// and "catching". The global tracer provider is used unless WithTracer is given.
package dispatch

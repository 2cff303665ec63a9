// Package router holds the route and catcher tables used by the dispatch
// engine and answers two questions for a request: which routes may serve
// it, in which order, and which catcher renders a given failure status.
//
// # Features
//
//   - Ranked routes: lower ranks are tried first, ties keep registration order
//   - Default ranks by specificity: static paths before mixed before fully dynamic
//   - Path parameters, regexp parameters, and a trailing multi-segment capture
//   - Format matching against Content-Type or Accept
//   - Routes and catchers mounted under base paths
//   - Catchers per status code plus default catchers, chosen by most specific base
//   - Lazy candidate iteration with iter.Seq2
//   - Collision report for routes that shadow each other
//
// # Basic Usage
//
//	r := router.New()
//
//	r.Mount("/",
//		router.Get("/", handler.Func(index)),
//		router.Get("/users/{id:[0-9]+}", handler.Func(showUser)),
//		router.Get("/users/{name}", handler.Func(showUserByName)),
//		router.Post("/users", handler.Func(createUser), router.WithFormat("json")),
//	)
//	r.Mount("/static", router.Get("/*", handler.Func(serveFile), router.WithRank(10)))
//
//	r.Register("/",
//		router.NewCatcher(http.StatusNotFound, handler.ErrorHandlerFunc(notFound)),
//		router.NewDefaultCatcher(handler.ErrorHandlerFunc(fallback)),
//	)
//	r.Register("/api", router.NewDefaultCatcher(handler.ErrorHandlerFunc(apiError)))
//
//	r.Finalize()
//
// # Patterns
//
//	/users            static segment
//	/users/{id}       any non-empty segment, captured as "id"
//	/users/{id:[0-9]+} a segment matching the anchored regexp
//	/files/*          zero or more trailing segments, captured as "*"
//
// Parameters must span a whole segment. Registration errors panic.
//
// # Routing
//
// Route yields every matching route in order; the caller decides when to stop:
//
//	for route, params := range r.Route(req) {
//		req.SetRoute(route.Info(), params)
//		...
//	}
//
// # Catchers
//
// For a failure status, the status-specific catcher with the most specific
// matching base wins. A default catcher is used when no status-specific
// catcher matches, or when its base is strictly more specific. Catch
// returns nil when nothing is registered for the request.
//
// # Lifecycle
//
// Mount and Register panic once Finalize has run; Route and Catch panic
// before it. A finalized router is read-only and shared by all requests.
package router

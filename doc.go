// Package rocket is a web framework built around a request dispatch engine.
// Requests are matched against ranked routes that may succeed, fail with a
// status, or forward to the next route; failures are rendered by catchers;
// fairings observe and adjust every request and response.
//
// # Package Organization
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/yonasBSD/Rocket/core/dispatch
//	go doc -all github.com/yonasBSD/Rocket/fairings
//
// # Core Packages
//
//	github.com/yonasBSD/Rocket/core/outcome   - Tri-state Success/Error/Forward result type
//	github.com/yonasBSD/Rocket/core/handler   - Request, Data, Response, and handler contracts
//	github.com/yonasBSD/Rocket/core/router    - Ranked route and catcher tables
//	github.com/yonasBSD/Rocket/core/guard     - Panic containment around handler calls
//	github.com/yonasBSD/Rocket/core/fairing   - Request, response, liftoff, and shutdown hooks
//	github.com/yonasBSD/Rocket/core/catcher   - Built-in HTML and JSON error pages
//	github.com/yonasBSD/Rocket/core/dispatch  - The dispatch engine and its http.Handler adapter
//	github.com/yonasBSD/Rocket/core/cookie    - Cookie jar with signed and private cookies
//	github.com/yonasBSD/Rocket/core/upgrade   - WebSocket and raw protocol upgrade handlers
//	github.com/yonasBSD/Rocket/core/server    - HTTP server with graceful shutdown
//	github.com/yonasBSD/Rocket/core/config    - Type-safe environment variable loading
//	github.com/yonasBSD/Rocket/core/logger    - Structured logging built on slog
//
// # Route Building Blocks
//
//	github.com/yonasBSD/Rocket/core/binder    - JSON, form, query, and path data guards
//	github.com/yonasBSD/Rocket/core/static    - File server route over an fs.FS
//	github.com/yonasBSD/Rocket/core/health    - Liveness and readiness routes
//	github.com/yonasBSD/Rocket/fairings       - Shield, request logging, and CORS fairings
//
// # Application
//
//	github.com/yonasBSD/Rocket/app            - Wires router, fairings, engine, and server
//
// # Quick Start
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	a.Mount("/", router.Get("/hello/{name}", handler.Func(hello)))
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := a.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package rocket

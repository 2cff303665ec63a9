// Package health provides handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	r.Mount("/health", health.Routes(log, db.Ping, cache.Ping)...)
//	r.Mount("/", router.Get("/ping", health.NoContent()))
//
// Dependency checks follow the func(context.Context) error signature and run
// concurrently with the request's context:
//
//	func checkDB(ctx context.Context) error {
//		return db.PingContext(ctx)
//	}
package health

// Package server runs an http.Handler, usually the dispatch engine, with
// graceful shutdown and production defaults.
//
// # Key Features
//
//   - Graceful shutdown with configurable timeout
//   - Liftoff fairings once the address is bound, shutdown fairings on stop
//   - errgroup-friendly Run
//   - Environment configuration via Config
//
// # Basic Usage
//
//	engine := dispatch.New(r, dispatch.WithFairings(fairings))
//	srv := server.New(":8000",
//		server.WithLogger(log),
//		server.WithFairings(fairings),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, engine))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a func() error for errgroup. It starts the server, waits for
// the context to be canceled, then stops the server gracefully. Start and
// Stop are available when the caller manages the lifecycle itself; Start
// blocks until its context is canceled but does not stop the server.
//
// # Fairings
//
// Liftoff fairings run after the listener is bound, so a liftoff hook may
// read Addr. Shutdown fairings run when Stop begins, before in-flight
// requests are drained, and share the shutdown timeout.
//
// # Configuration
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// Environment variables: ROCKET_ADDR, ROCKET_READ_TIMEOUT,
// ROCKET_READ_HEADER_TIMEOUT, ROCKET_WRITE_TIMEOUT, ROCKET_IDLE_TIMEOUT,
// ROCKET_SHUTDOWN_TIMEOUT, ROCKET_MAX_HEADER_BYTES.
package server

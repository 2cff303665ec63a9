// Package app composes a complete application from configuration: logger,
// router, fairings, cookie manager, dispatch engine, and server.
//
// # Basic Usage
//
//	a, err := app.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a.Mount("/", router.Get("/hello/{name}", handler.Func(hello))).
//		Register("/", router.NewCatcher(http.StatusNotFound, handler.ErrorHandlerFunc(notFound))).
//		Attach(fairing.OnLiftoff("banner", func(ctx context.Context) {
//			a.Logger().InfoContext(ctx, "listening", "addr", a.Server().Addr())
//		}))
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := a.Run(ctx); err != nil {
//		os.Exit(1)
//	}
//
// New reads Config from the environment (and a .env file when present).
// NewFromConfig takes an explicit Config, which is convenient in tests.
//
// # Environment Variables
//
//	APP_NAME, APP_ENV (development, staging, production), LOG_LEVEL
//	ROCKET_IDENT, ROCKET_ALT_SVC, ROCKET_REQUEST_ID_HEADER  engine
//	ROCKET_IP_HEADER                                        engine
//	ROCKET_SHIELD, ROCKET_REQUEST_LOGGING                   default fairings
//	ROCKET_ADDR, ROCKET_*_TIMEOUT, ROCKET_MAX_HEADER_BYTES  server
//	COOKIE_SECRETS, COOKIE_*                                cookies
//
// # Default Fairings
//
// Unless disabled, the request logging fairing and Shield are attached
// before any fairing given to Attach. Shield uses the development preset
// outside staging and production.
//
// # Background Work
//
// Run accepts extra functions that live as long as the server. When one
// returns an error the server is shut down and Run returns that error:
//
//	err := a.Run(ctx, func(ctx context.Context) error {
//		return consumer.Run(ctx)
//	})
package app

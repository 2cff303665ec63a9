// Package logger builds slog loggers and provides the attribute helpers used
// throughout the module for consistent keys.
//
// # Features
//
//   - Environment presets (development, staging, production)
//   - JSON or text output to any writer
//   - Attributes injected from the record context
//   - Attribute helpers that drop empty values
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
//	log.Info("route matched",
//		logger.Component("engine"),
//		logger.Method("GET"),
//		logger.Path("/users/7"),
//		logger.Route(route),
//		logger.Rank(route.Rank()),
//	)
//
// Presets set level, format, and the "service" and "env" attributes:
//
//	logger.WithDevelopment("api") // text, debug
//	logger.WithStaging("api")     // JSON, info
//	logger.WithProduction("api")  // JSON, info
//
// # Attribute Helpers
//
// Helpers with optional input return an empty slog.Attr when the input is
// missing, and slog omits empty attributes:
//
//	log.Error("handler panicked",
//		logger.Handler(name),   // omitted when name is ""
//		logger.Panic(value),
//		logger.StackTrace(stack),
//		logger.RequestID(req.ID()),
//	)
//
// # Testing
//
// Discard returns a logger that drops everything; components default to it.
// Capture output with WithOutput:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
package logger

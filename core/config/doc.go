// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use, if one exists, and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/yonasBSD/Rocket/core/config"
//
//	type EngineConfig struct {
//		Ident  string `env:"ROCKET_IDENT" envDefault:"Rocket"`
//		AltSvc string `env:"ROCKET_ALT_SVC"`
//		Secret string `env:"ROCKET_SECRET_KEY,required"`
//	}
//
//	func main() {
//		var cfg EngineConfig
//
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process; later changes to
// the environment are not observed:
//
//	var a, b EngineConfig
//	config.Load(&a) // parses the environment
//	config.Load(&b) // copies the cached value, a == b
//
// Failed loads are not cached. Different types are cached independently, so
// packages can each declare their own Config and load it without
// coordination:
//
//	config.MustLoad(&dispatch.Config{})
//	config.MustLoad(&server.Config{})
package config

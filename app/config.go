package app

import (
	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/dispatch"
	"github.com/yonasBSD/Rocket/core/server"
)

// Config is the complete application configuration. Nested configs read
// their own environment variables.
type Config struct {
	Engine dispatch.Config
	Cookie cookie.Config
	Server server.Config

	AppName  string `env:"APP_NAME" envDefault:"rocket"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Shield attaches the security headers fairing, RequestLogging the
	// request logging fairing.
	Shield         bool `env:"ROCKET_SHIELD" envDefault:"true"`
	RequestLogging bool `env:"ROCKET_REQUEST_LOGGING" envDefault:"true"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Engine: dispatch.Config{
			Ident:           dispatch.DefaultIdent,
			RequestIDHeader: dispatch.DefaultRequestIDHeader,
			IPHeader:        dispatch.DefaultIPHeader,
		},
		Cookie:   cookie.DefaultConfig(),
		Server:   server.DefaultConfig(),
		AppName:  "rocket",
		Env:      EnvDevelopment,
		LogLevel: "info",

		Shield:         true,
		RequestLogging: true,
	}
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

package dispatch

import "github.com/yonasBSD/Rocket/core/router"

// Config provides environment-based configuration for the engine.
type Config struct {
	Ident           string `env:"ROCKET_IDENT" envDefault:"Rocket"`
	AltSvc          string `env:"ROCKET_ALT_SVC" envDefault:""`
	RequestIDHeader string `env:"ROCKET_REQUEST_ID_HEADER" envDefault:"X-Request-Id"`

	// IPHeader names the header holding the real client IP. Set
	// ROCKET_IP_HEADER to "-" to disable it.
	IPHeader string `env:"ROCKET_IP_HEADER" envDefault:"X-Real-IP"`
}

// NewFromConfig creates an Engine from configuration.
// Only non-zero config values override defaults; opts are applied last.
func NewFromConfig(r *router.Router, cfg Config, opts ...Option) *Engine {
	configOpts := make([]Option, 0, 4+len(opts))

	if cfg.Ident != "" {
		configOpts = append(configOpts, WithIdent(cfg.Ident))
	}
	if cfg.AltSvc != "" {
		configOpts = append(configOpts, WithAltSvc(cfg.AltSvc))
	}
	if cfg.RequestIDHeader != "" {
		configOpts = append(configOpts, WithRequestIDHeader(cfg.RequestIDHeader))
	}

	switch cfg.IPHeader {
	case "":
	case "-":
		configOpts = append(configOpts, WithIPHeader(""))
	default:
		configOpts = append(configOpts, WithIPHeader(cfg.IPHeader))
	}

	return New(r, append(configOpts, opts...)...)
}

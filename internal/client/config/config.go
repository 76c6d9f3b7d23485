package config

import (
	"net"
	"os"
	"strings"
)

// Known API gateways. The local one is used when the client runs against a
// developer backend on this machine.
const (
	LocalAPIBaseURL      = "http://localhost:8080"
	ProductionAPIBaseURL = "https://bbp-api-gateway-service-production.up.railway.app"
)

// Config holds runtime settings for the trip tracker CLI.
//
// Fields:
//   - OriginHost: host the client considers itself served from; selects the gateway.
//   - APIBaseURL: explicit gateway override; resolved from OriginHost when empty.
//   - DatabasePath: SQLite file holding the session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	OriginHost   string
	APIBaseURL   string
	DatabasePath string
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.OriginHost = ""
	c.APIBaseURL = ""
	c.DatabasePath = "triptracker.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. The API base URL is
// resolved last and stays fixed for the life of the process.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	parseEnv(cfg)
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = ResolveBaseURL(cfg.OriginHost)
	}
	return cfg, nil
}

// ResolveBaseURL picks the API gateway for the given origin host. Only
// "localhost" (with or without a port) selects the local gateway.
func ResolveBaseURL(host string) string {
	h := strings.TrimSpace(host)
	if name, _, err := net.SplitHostPort(h); err == nil {
		h = name
	}
	if h == "localhost" {
		return LocalAPIBaseURL
	}
	return ProductionAPIBaseURL
}

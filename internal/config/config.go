package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	Gateway        string
	IGDB           IGDBConfig
	SearchDebounce time.Duration
	CORSOrigins    []string
	Metrics        MetricsConfig
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		Gateway:        strings.ToLower(envOrDefault(envGateway, defaultGateway)),
		IGDB:           loadIGDB(),
		SearchDebounce: durationEnvOrDefault(envSearchDebounce, defaultSearchDebounce),
		CORSOrigins:    listEnv(envCORSOrigins),
		Metrics:        loadMetrics(),
		LogLevel:       envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:      envOrDefault(envLogFormat, defaultLogFormat),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if !govalidator.IsPort(c.Port) {
		errs = append(errs, fmt.Errorf("%s: invalid port %q", envPort, c.Port))
	}
	if c.Metrics.Enabled && !govalidator.IsPort(c.Metrics.Port) {
		errs = append(errs, fmt.Errorf("%s: invalid port %q", envMetricsPort, c.Metrics.Port))
	}

	switch c.Gateway {
	case GatewayIGDB:
		if !isHTTPURL(c.IGDB.ProxyURL) {
			errs = append(errs, fmt.Errorf("%s: invalid url %q", envProxyURL, c.IGDB.ProxyURL))
		}
		if !isHTTPURL(c.IGDB.APIURL) {
			errs = append(errs, fmt.Errorf("%s: invalid url %q", envAPIURL, c.IGDB.APIURL))
		}
	case GatewayFixture:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown gateway %q (want %s or %s)", envGateway, c.Gateway, GatewayIGDB, GatewayFixture))
	}

	for _, origin := range c.CORSOrigins {
		if origin != "*" && !isHTTPURL(origin) {
			errs = append(errs, fmt.Errorf("%s: invalid origin %q", envCORSOrigins, origin))
		}
	}

	return errors.Join(errs...)
}

func isHTTPURL(raw string) bool {
	if !govalidator.IsRequestURL(raw) {
		return false
	}
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

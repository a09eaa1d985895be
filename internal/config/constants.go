package config

import "time"

const (
	envPort            = "PORT"
	envGateway         = "GATEWAY"
	envProxyURL        = "IGDB_PROXY_URL"
	envAPIURL          = "IGDB_API_URL"
	envToken           = "IGDB_TOKEN"
	envLegacyToken     = "TOKEN"
	envClientID        = "IGDB_CLIENT_ID"
	envRateInterval    = "IGDB_RATE_INTERVAL"
	envSearchDebounce  = "SEARCH_DEBOUNCE"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envEnvFile         = "ENV_FILE"
	defaultEnvFile     = ".env"
	defaultServiceName = "igdb-games-service"

	defaultPort     = "4000"
	defaultGateway  = GatewayFixture
	defaultProxyURL = "https://igdb-api.nunogois.com"
	defaultAPIURL   = "https://api.igdb.com/v4/games"
	// IGDB allows four requests per second.
	defaultRateInterval   = 250 * time.Millisecond
	defaultSearchDebounce = 300 * time.Millisecond
	defaultMetricsPort    = "9090"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Gateways selectable with GATEWAY.
const (
	GatewayIGDB    = "igdb"
	GatewayFixture = "fixture"
)

package server

import (
	"log/slog"

	"igdb-games-service/internal/config"
	"igdb-games-service/internal/metrics"
	"igdb-games-service/internal/providers"
)

// providerFactory assembles the gateway with shared wrappers (rate limit + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) (providers.GameProvider, error) {
	base, err := selectProvider(cfg, f.logger)
	if err != nil {
		return nil, err
	}
	return f.wrap(cfg, base), nil
}

func (f providerFactory) wrap(cfg config.Config, base providers.GameProvider) providers.GameProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.IGDB.RateInterval, f.logger)
	return providers.NewInstrumentedProvider(limited, normalizeGatewayName(cfg.Gateway), f.logger, f.metrics)
}

package server

import (
	"log/slog"

	"igdb-games-service/internal/config"
	"igdb-games-service/internal/providers"
	"igdb-games-service/internal/providers/fixture"
	"igdb-games-service/internal/providers/igdb"
)

func selectProvider(cfg config.Config, logger *slog.Logger) (providers.GameProvider, error) {
	switch normalizeGatewayName(cfg.Gateway) {
	case config.GatewayIGDB:
		return igdb.NewClient(igdb.Config{
			ProxyURL: cfg.IGDB.ProxyURL,
			APIURL:   cfg.IGDB.APIURL,
			Token:    cfg.IGDB.Token,
			ClientID: cfg.IGDB.ClientID,
		}), nil
	case config.GatewayFixture:
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown gateway, falling back to fixture", slog.String("gateway", cfg.Gateway))
		}
		return fixture.New()
	}
}

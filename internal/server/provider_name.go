package server

import (
	"strings"

	"igdb-games-service/internal/config"
)

// normalizeGatewayName lower-cases the configured gateway; blank means the fixture gateway.
// The result names the provider in metrics and logs.
func normalizeGatewayName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return config.GatewayFixture
	}
	return name
}

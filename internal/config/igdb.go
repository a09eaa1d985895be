package config

import "time"

// IGDBConfig controls how the gateway client reaches IGDB.
type IGDBConfig struct {
	ProxyURL     string
	APIURL       string
	Token        string
	ClientID     string
	RateInterval time.Duration
}

func loadIGDB() IGDBConfig {
	return IGDBConfig{
		ProxyURL:     envOrDefault(envProxyURL, defaultProxyURL),
		APIURL:       envOrDefault(envAPIURL, defaultAPIURL),
		Token:        envOrDefault(envToken, envOrDefault(envLegacyToken, "")),
		ClientID:     envOrDefault(envClientID, ""),
		RateInterval: durationEnvOrDefault(envRateInterval, defaultRateInterval),
	}
}

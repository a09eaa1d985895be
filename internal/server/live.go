package server

import (
	"net/http"
	"net/url"
	"strings"
)

// liveHub is the part of the live-search hub the server manages on shutdown.
type liveHub interface {
	http.Handler
	Close()
}

// originChecker admits same-origin upgrades plus any configured CORS origin. With no origins
// configured it returns nil and the websocket upgrader's same-origin default applies.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	_, wildcard := allowed["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

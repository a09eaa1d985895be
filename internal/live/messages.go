package live

import (
	"encoding/json"

	domaingames "igdb-games-service/internal/domain/games"
)

// Message types exchanged over the live-search socket.
const (
	TypeSearch  = "search"
	TypePing    = "ping"
	TypeResults = "results"
	TypeError   = "error"
	TypePong    = "pong"
)

// ErrorText is shown to users when a search fails.
const ErrorText = "Error loading games."

// Inbound is a message received from a client. Payload is decoded according to Type.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outbound is a message sent to a client.
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// SearchPayload carries the term of a search request.
type SearchPayload struct {
	Term string `json:"term"`
}

// ResultsPayload carries the games found for term.
type ResultsPayload struct {
	Term  string             `json:"term"`
	Games []domaingames.Game `json:"games"`
}

// ErrorPayload reports a failed search.
type ErrorPayload struct {
	Term    string `json:"term"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

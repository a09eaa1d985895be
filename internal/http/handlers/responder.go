package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"igdb-games-service/internal/http/middleware"
	"igdb-games-service/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message, kind string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.RequestIDHeader)
	}
	writeJSON(w, status, errorBody{Error: message, Kind: kind, RequestID: reqID}, logger)
}

// writeHTML renders into a buffer so a template failure can still produce a clean 500.
func writeHTML(w http.ResponseWriter, status int, render func(*bytes.Buffer) error, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logging.Error(logger, "failed to render page", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil && logger != nil {
		logger.Warn("failed to write page", "err", err)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

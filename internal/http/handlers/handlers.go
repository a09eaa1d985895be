package handlers

import (
	"bytes"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	appgames "igdb-games-service/internal/app/games"
	"igdb-games-service/internal/logging"
	"igdb-games-service/internal/views"
)

// Handler wires HTTP routes to the games service, the HTML views and the live-search hub.
type Handler struct {
	svc    *appgames.Service
	views  *views.Renderer
	live   nethttp.Handler
	logger *slog.Logger
	mux    *nethttp.ServeMux
}

// NewHandler constructs a Handler and registers its routes. live may be nil to disable live search.
func NewHandler(svc *appgames.Service, renderer *views.Renderer, live nethttp.Handler, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:    svc,
		views:  renderer,
		live:   live,
		logger: logger,
		mux:    nethttp.NewServeMux(),
	}

	h.mux.HandleFunc("GET /health", h.Health)
	h.mux.HandleFunc("GET /ready", h.Ready)
	h.mux.HandleFunc("GET /{$}", h.Index)
	h.mux.HandleFunc("GET /game/{id}", h.GamePage)
	h.mux.HandleFunc("GET /api/games", h.SearchGames)
	h.mux.HandleFunc("GET /api/games/popular", h.PopularGames)
	h.mux.HandleFunc("GET /api/games/{id}", h.GameByID)
	h.mux.HandleFunc("GET /ws/search", h.LiveSearch)
	return h
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.mux.ServeHTTP(w, r)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", "", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.svc == nil || h.views == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", "", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Index renders the search page. A blank ?search= shows the popular listing.
func (h *Handler) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("search"))
	out := h.svc.Search(r.Context(), term)
	if out.Kind == appgames.KindCancelled {
		h.cancelled(w, r)
		return
	}

	games, _ := out.Value()
	page := views.IndexPage{Term: term, Games: games, Failed: out.Failed()}
	h.served(r, "index", out, len(games))
	writeHTML(w, statusFor(out), func(buf *bytes.Buffer) error {
		return h.views.Index(buf, page)
	}, loggerFromContext(r, h.logger))
}

// GamePage renders the detail page for one game.
func (h *Handler) GamePage(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := parseGameID(r)
	if !ok {
		writeHTML(w, nethttp.StatusBadRequest, func(buf *bytes.Buffer) error {
			return h.views.Game(buf, views.GamePage{})
		}, logger)
		return
	}

	out := h.svc.GameByID(r.Context(), id)
	if out.Kind == appgames.KindCancelled {
		h.cancelled(w, r)
		return
	}

	game, found := out.First()
	status := statusFor(out)
	if status == nethttp.StatusOK && !found {
		status = nethttp.StatusNotFound
	}
	h.served(r, "game", out, len(out.Games))
	writeHTML(w, status, func(buf *bytes.Buffer) error {
		return h.views.Game(buf, views.GamePage{Game: game, Found: found, Failed: out.Failed()})
	}, logger)
}

// SearchGames returns games matching ?search= as JSON, or the popular listing for a blank term.
func (h *Handler) SearchGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeGames(w, r, h.svc.Search(r.Context(), r.URL.Query().Get("search")))
}

// PopularGames returns the popular listing as JSON.
func (h *Handler) PopularGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeGames(w, r, h.svc.Popular(r.Context()))
}

// GameByID returns a single game as JSON.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := parseGameID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", "", h.logger)
		return
	}

	out := h.svc.GameByID(r.Context(), id)
	if !h.writeFailure(w, r, out) {
		return
	}
	game, found := out.First()
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", "", h.logger)
		return
	}
	h.served(r, "api", out, 1)
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// LiveSearch hands the connection to the live-search hub.
func (h *Handler) LiveSearch(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.live == nil {
		writeError(w, r, nethttp.StatusNotFound, "live search disabled", "", h.logger)
		return
	}
	h.live.ServeHTTP(w, r)
}

func (h *Handler) writeGames(w nethttp.ResponseWriter, r *nethttp.Request, out appgames.Outcome) {
	if !h.writeFailure(w, r, out) {
		return
	}
	games, _ := out.Value()
	h.served(r, "api", out, len(games))
	writeJSON(w, nethttp.StatusOK, games, h.logger)
}

// writeFailure writes the error response for a failed or cancelled outcome and reports whether
// the caller should continue.
func (h *Handler) writeFailure(w nethttp.ResponseWriter, r *nethttp.Request, out appgames.Outcome) bool {
	switch {
	case out.Kind == appgames.KindCancelled:
		h.cancelled(w, r)
		return false
	case out.Failed():
		writeError(w, r, nethttp.StatusBadGateway, views.ErrorText, out.Kind.String(), h.logger)
		return false
	default:
		return true
	}
}

func (h *Handler) cancelled(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusServiceUnavailable, "request cancelled", appgames.KindCancelled.String(), h.logger)
}

func (h *Handler) served(r *nethttp.Request, view string, out appgames.Outcome, count int) {
	logger := loggerFromContext(r, h.logger)
	if logger == nil {
		return
	}
	logger.Info("served games",
		slog.String("view", view),
		slog.String("outcome", out.Kind.String()),
		slog.Int(logging.FieldCount, count),
	)
}

func statusFor(out appgames.Outcome) int {
	if out.Failed() {
		return nethttp.StatusBadGateway
	}
	return nethttp.StatusOK
}

func parseGameID(r *nethttp.Request) (uint64, bool) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

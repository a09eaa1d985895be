package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appgames "igdb-games-service/internal/app/games"
	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/http/middleware"
	"igdb-games-service/internal/providers"
	"igdb-games-service/internal/teststubs"
	"igdb-games-service/internal/testutil"
	"igdb-games-service/internal/views"
)

func newRenderer(t testing.TB) *views.Renderer {
	t.Helper()
	r, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	return r
}

func newHandler(t *testing.T, games ...domaingames.Game) (*Handler, *teststubs.StubProvider) {
	t.Helper()
	provider := &teststubs.StubProvider{Games: games, ByID: map[uint64]domaingames.Game{}}
	for _, g := range games {
		provider.ByID[g.ID] = g
	}
	return NewHandler(appgames.NewService(provider), newRenderer(t), nil, nil), provider
}

func TestHealth(t *testing.T) {
	h, _ := newHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if body := testutil.DecodeError(t, rr); body.Error != "shutting down" {
		t.Fatalf("unexpected error %q", body.Error)
	}
}

func TestReady(t *testing.T) {
	h, _ := newHandler(t)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/ready", nil), http.StatusOK)

	notReady := NewHandler(nil, nil, nil, nil)
	testutil.AssertStatus(t, testutil.Serve(notReady, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newHandler(t)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodPost, "/api/games", nil), http.StatusMethodNotAllowed)
}

func TestSearchGamesJSON(t *testing.T) {
	h, provider := newHandler(t, testutil.SampleGames("The Legend of Zelda", "Zelda II")...)

	rr := testutil.Serve(h, http.MethodGet, "/api/games?search=zelda", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %s", ct)
	}

	var games []domaingames.Game
	testutil.DecodeJSON(t, rr, &games)
	if len(games) != 2 || games[0].Name != "The Legend of Zelda" {
		t.Fatalf("unexpected games %+v", games)
	}
	qs := provider.Queries()
	if len(qs) != 1 || qs[0].Mode != providers.ModeSearch || qs[0].Term != "zelda" {
		t.Fatalf("unexpected queries %+v", qs)
	}
}

func TestSearchGamesBlankTermUsesPopular(t *testing.T) {
	h, provider := newHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/api/games?search=%20%20", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rr.Body.String())
	}
	if qs := provider.Queries(); len(qs) != 1 || qs[0].Mode != providers.ModePopular {
		t.Fatalf("expected popular query, got %+v", qs)
	}
}

func TestPopularGamesJSON(t *testing.T) {
	h, provider := newHandler(t, testutil.SampleGames("Elden Ring")...)

	rr := testutil.Serve(h, http.MethodGet, "/api/games/popular", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if qs := provider.Queries(); len(qs) != 1 || qs[0].Mode != providers.ModePopular {
		t.Fatalf("expected popular query, got %+v", qs)
	}
}

func TestGameByIDJSON(t *testing.T) {
	h, _ := newHandler(t, testutil.SampleGames("one", "two")...)

	rr := testutil.Serve(h, http.MethodGet, "/api/games/2", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var game domaingames.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.ID != 2 || game.Name != "two" {
		t.Fatalf("unexpected game %+v", game)
	}

	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/api/games/99", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/api/games/abc", nil), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/api/games/0", nil), http.StatusBadRequest)
}

func TestAPIFailuresReturnBadGatewayWithKind(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{&providers.TransportError{Provider: "igdb", StatusCode: 500}, "transport"},
		{&providers.RateLimitError{StatusCode: 429}, "transport"},
		{fmt.Errorf("record 0: %w", &providers.DecodeError{Field: "name"}), "decode"},
	}

	for _, c := range cases {
		h := NewHandler(teststubs.NewFailingService(c.err), newRenderer(t), nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/games?search=zelda", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-1")
		rr := testutil.ServeRequest(h, req)

		testutil.AssertStatus(t, rr, http.StatusBadGateway)
		body := testutil.DecodeError(t, rr)
		if body.Kind != c.kind || body.Error != views.ErrorText || body.RequestID != "req-1" {
			t.Fatalf("unexpected error body %+v", body)
		}
	}
}

func TestCancelledRequestReturnsServiceUnavailable(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games/popular", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(h, req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if body := testutil.DecodeError(t, rr); body.Kind != "cancelled" {
		t.Fatalf("expected cancelled kind, got %+v", body)
	}
}

func TestIndexRendersResults(t *testing.T) {
	h, _ := newHandler(t, testutil.SampleGames("Breath of the Wild")...)

	rr := testutil.Serve(h, http.MethodGet, "/?search=wild", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %s", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Breath of the Wild") || !strings.Contains(body, `href="/game/1"`) {
		t.Fatalf("expected game card in body")
	}
}

func TestIndexEmptyAndFailure(t *testing.T) {
	h, _ := newHandler(t)
	rr := testutil.Serve(h, http.MethodGet, "/?search=nothing", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `<p class="message">No games found.</p>`) {
		t.Fatalf("expected empty message")
	}

	failing := NewHandler(teststubs.NewFailingService(errors.New("boom")), newRenderer(t), nil, nil)
	rr = testutil.Serve(failing, http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
	if !strings.Contains(rr.Body.String(), `<p class="message">Error loading games.</p>`) {
		t.Fatalf("expected error message")
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	h, _ := newHandler(t)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/nope", nil), http.StatusNotFound)
}

func TestGamePage(t *testing.T) {
	h, _ := newHandler(t, testutil.SampleGames("Zelda")...)

	rr := testutil.Serve(h, http.MethodGet, "/game/1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "<h2>Zelda</h2>") {
		t.Fatalf("expected detail heading")
	}

	rr = testutil.Serve(h, http.MethodGet, "/game/404", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if !strings.Contains(rr.Body.String(), views.EmptyText) {
		t.Fatalf("expected not found message")
	}

	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/game/zelda", nil), http.StatusBadRequest)
}

func TestLiveSearchDisabled(t *testing.T) {
	h, _ := newHandler(t)
	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/ws/search", nil), http.StatusNotFound)
}

func TestLiveSearchDelegates(t *testing.T) {
	called := false
	live := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusSwitchingProtocols)
	})
	svc, _ := teststubs.NewService(nil)
	h := NewHandler(svc, newRenderer(t), live, nil)

	testutil.Serve(h, http.MethodGet, "/ws/search", nil)
	if !called {
		t.Fatalf("expected live handler to be called")
	}
}

func BenchmarkSearchGames(b *testing.B) {
	svc, _ := teststubs.NewService(testutil.SampleGames("a", "b", "c"))
	h := NewHandler(svc, newRenderer(b), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/games?search=a", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
	}
}

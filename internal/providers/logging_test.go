package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/metrics"
	"igdb-games-service/internal/testutil"
)

func TestInstrumentedProviderRecordsSuccess(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &stubProvider{Games: []domaingames.Game{domaingames.NewGame(1, "A")}}
	p := NewInstrumentedProvider(inner, "igdb", nil, rec)

	games, err := p.FetchGames(context.Background(), Search("a"))
	if err != nil || len(games) != 1 {
		t.Fatalf("expected games, got %v (%v)", games, err)
	}
	if rec.ProviderCalls("igdb") != 1 || rec.ProviderErrors("igdb") != 0 {
		t.Fatalf("unexpected snapshot %+v", rec.Snapshot("igdb"))
	}
}

func TestInstrumentedProviderLogsAndCountsFailures(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	inner := &stubProvider{Err: &RateLimitError{StatusCode: 429, RetryAfter: 2 * time.Second}}
	p := NewInstrumentedProvider(inner, "igdb", logger, rec)

	if _, err := p.FetchGames(context.Background(), Search("zelda")); err == nil {
		t.Fatalf("expected error")
	}
	if rec.ProviderErrors("igdb") != 1 || rec.RateLimitHits("igdb") != 1 {
		t.Fatalf("unexpected snapshot %+v", rec.Snapshot("igdb"))
	}
	if rec.LastRetryAfter("igdb") != 2*time.Second {
		t.Fatalf("expected retry-after recorded")
	}
	out := buf.String()
	if !strings.Contains(out, "provider fetch failed") || !strings.Contains(out, "error_kind=rate_limit") || !strings.Contains(out, "query=zelda") {
		t.Fatalf("expected failure log with details, got %s", out)
	}
}

func TestInstrumentedProviderStaysSilentOnCancellation(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	inner := &stubProvider{Err: context.Canceled}
	p := NewInstrumentedProvider(inner, "igdb", logger, rec)

	if _, err := p.FetchGames(context.Background(), Search("zelda")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to propagate, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output on cancellation, got %s", buf.String())
	}
	snap := rec.Snapshot("igdb")
	if snap.Calls != 0 || snap.Errors != 0 || snap.Cancellations != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestInstrumentedProviderHandlesNilInner(t *testing.T) {
	p := NewInstrumentedProvider(nil, "", nil, nil)
	if _, err := p.FetchGames(context.Background(), Popular()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

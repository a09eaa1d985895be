package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appgames "igdb-games-service/internal/app/games"
	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/metrics"
	"igdb-games-service/internal/providers"
	"igdb-games-service/internal/store"
)

// gatedProvider blocks searches for gated terms until released, ignoring cancellation so
// late results can be observed.
type gatedProvider struct {
	mu      sync.Mutex
	gated   map[string]chan struct{}
	started chan string
	terms   []string
	errs    map[string]error
}

func newGatedProvider(gatedTerms ...string) *gatedProvider {
	p := &gatedProvider{
		gated:   make(map[string]chan struct{}),
		started: make(chan string, 16),
		errs:    make(map[string]error),
	}
	for _, term := range gatedTerms {
		p.gated[term] = make(chan struct{})
	}
	return p
}

func (p *gatedProvider) release(term string) {
	close(p.gated[term])
}

func (p *gatedProvider) FetchGames(ctx context.Context, q providers.Query) ([]domaingames.Game, error) {
	p.mu.Lock()
	p.terms = append(p.terms, q.Term)
	gate := p.gated[q.Term]
	err := p.errs[q.Term]
	p.mu.Unlock()

	p.started <- q.Term
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return []domaingames.Game{domaingames.NewGame(uint64(len(q.Term)), q.Term)}, nil
}

func (p *gatedProvider) searchedTerms() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.terms...)
}

type submitResult struct {
	out       appgames.Outcome
	published bool
}

func submitAsync(s *Session, ctx context.Context, term string) <-chan submitResult {
	ch := make(chan submitResult, 1)
	go func() {
		out, published := s.Submit(ctx, term)
		ch <- submitResult{out: out, published: published}
	}()
	return ch
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting")
	}
	var zero T
	return zero
}

func TestSubmitPublishesResults(t *testing.T) {
	provider := newGatedProvider()
	recorder := metrics.NewRecorder()
	s := NewSession(appgames.NewService(provider), nil, Options{Metrics: recorder})

	out, published := s.Submit(context.Background(), "zelda")
	if !published || out.Kind != appgames.KindOK {
		t.Fatalf("expected published ok outcome, got %+v published=%v", out, published)
	}

	snap := s.View().Snapshot()
	if snap.Status != store.StatusReady || snap.Term != "zelda" || len(snap.Games) != 1 {
		t.Fatalf("unexpected view %+v", snap)
	}
	if recorder.Searches("ok") != 1 {
		t.Fatalf("expected ok search metric")
	}
}

func TestNewerSubmissionSupersedesInFlightSearch(t *testing.T) {
	provider := newGatedProvider("zelda")
	recorder := metrics.NewRecorder()
	s := NewSession(appgames.NewService(provider), nil, Options{Metrics: recorder})

	zelda := submitAsync(s, context.Background(), "zelda")
	if term := waitFor(t, provider.started); term != "zelda" {
		t.Fatalf("expected zelda fetch first, got %s", term)
	}

	out, published := s.Submit(context.Background(), "mario")
	if !published || out.Kind != appgames.KindOK {
		t.Fatalf("expected mario to publish, got %+v", out)
	}

	provider.release("zelda")
	stale := waitFor(t, zelda)
	if stale.published {
		t.Fatalf("superseded search must not publish")
	}
	if stale.out.Kind != appgames.KindCancelled || !errors.Is(stale.out.Err, ErrSuperseded) {
		t.Fatalf("expected superseded outcome, got %+v", stale.out)
	}

	snap := s.View().Snapshot()
	if snap.Term != "mario" || len(snap.Games) != 1 || snap.Games[0].Name != "mario" {
		t.Fatalf("expected mario results to remain, got %+v", snap)
	}
	if recorder.Searches(OutcomeSuperseded) != 1 || recorder.Searches("ok") != 1 {
		t.Fatalf("unexpected search metrics superseded=%d ok=%d", recorder.Searches(OutcomeSuperseded), recorder.Searches("ok"))
	}
}

func TestDebounceCollapsesRapidSubmissions(t *testing.T) {
	provider := newGatedProvider()
	view := store.NewViewState()
	s := NewSession(appgames.NewService(provider), view, Options{Debounce: 200 * time.Millisecond})

	first := submitAsync(s, context.Background(), "zel")

	deadline := time.Now().Add(2 * time.Second)
	for view.Snapshot().Term != "zel" {
		if time.Now().After(deadline) {
			t.Fatalf("first submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	out, published := s.Submit(context.Background(), "zelda")
	if !published || out.Kind != appgames.KindOK {
		t.Fatalf("expected zelda to publish, got %+v", out)
	}

	res := waitFor(t, first)
	if res.published || !errors.Is(res.out.Err, ErrSuperseded) {
		t.Fatalf("expected first submission to be superseded during debounce, got %+v", res)
	}

	terms := provider.searchedTerms()
	if len(terms) != 1 || terms[0] != "zelda" {
		t.Fatalf("expected a single upstream search for zelda, got %v", terms)
	}
}

func TestSubmitPublishesFailureAsNoData(t *testing.T) {
	provider := newGatedProvider()
	provider.errs["zelda"] = &providers.TransportError{Provider: "igdb", StatusCode: 503}
	s := NewSession(appgames.NewService(provider), nil, Options{})

	s.View().SetResults("old", []domaingames.Game{domaingames.NewGame(1, "old")})

	out, published := s.Submit(context.Background(), "zelda")
	if !published || out.Kind != appgames.KindTransport {
		t.Fatalf("expected published transport failure, got %+v", out)
	}
	snap := s.View().Snapshot()
	if snap.Status != store.StatusFailed || len(snap.Games) != 0 {
		t.Fatalf("expected failed view without games, got %+v", snap)
	}
}

func TestCloseCancelsInFlightSearch(t *testing.T) {
	provider := newGatedProvider()
	s := NewSession(appgames.NewService(provider), nil, Options{Debounce: time.Hour})

	pending := submitAsync(s, context.Background(), "zelda")
	deadline := time.Now().Add(2 * time.Second)
	for s.View().Snapshot().Status != store.StatusLoading {
		if time.Now().After(deadline) {
			t.Fatalf("submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	s.Close()

	res := waitFor(t, pending)
	if res.published || res.out.Kind != appgames.KindCancelled {
		t.Fatalf("expected cancelled outcome, got %+v", res)
	}
	if len(provider.searchedTerms()) != 0 {
		t.Fatalf("expected no upstream call after close")
	}

	out, published := s.Submit(context.Background(), "mario")
	if published || !errors.Is(out.Err, ErrClosed) {
		t.Fatalf("expected closed session to reject submissions, got %+v", out)
	}
}

func TestParentContextCancellationIsSilent(t *testing.T) {
	provider := newGatedProvider()
	recorder := metrics.NewRecorder()
	s := NewSession(appgames.NewService(provider), nil, Options{Debounce: time.Hour, Metrics: recorder})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	out, published := s.Submit(ctx, "zelda")
	if published || out.Kind != appgames.KindCancelled {
		t.Fatalf("expected cancelled outcome, got %+v", out)
	}
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", out.Err)
	}
	if recorder.Searches("cancelled") != 1 {
		t.Fatalf("expected cancelled metric")
	}
	if s.View().Snapshot().Status != store.StatusLoading {
		t.Fatalf("cancelled search must not publish")
	}
}

func TestBeginOrderDecidesNewestRegardlessOfRunOrder(t *testing.T) {
	provider := newGatedProvider()
	recorder := metrics.NewRecorder()
	s := NewSession(appgames.NewService(provider), nil, Options{Metrics: recorder})

	zelda := s.Begin(context.Background(), "zelda")
	mario := s.Begin(context.Background(), "mario")

	out, published := mario()
	if !published || out.Kind != appgames.KindOK {
		t.Fatalf("expected mario to publish, got %+v published=%v", out, published)
	}

	stale, published := zelda()
	if published {
		t.Fatalf("earlier submission must not publish after a later one began")
	}
	if stale.Kind != appgames.KindCancelled {
		t.Fatalf("expected cancelled outcome for stale search, got %+v", stale)
	}

	snap := s.View().Snapshot()
	if snap.Term != "mario" || len(snap.Games) != 1 || snap.Games[0].Name != "mario" {
		t.Fatalf("expected mario results, got %+v", snap)
	}
	if recorder.Searches(OutcomeSuperseded) != 1 {
		t.Fatalf("expected one superseded search, got %d", recorder.Searches(OutcomeSuperseded))
	}
}

func TestBeginOnClosedSessionReturnsClosed(t *testing.T) {
	s := NewSession(appgames.NewService(newGatedProvider()), nil, Options{})
	s.Close()

	out, published := s.Begin(context.Background(), "zelda")()
	if published || !errors.Is(out.Err, ErrClosed) {
		t.Fatalf("expected closed outcome, got %+v published=%v", out, published)
	}
}

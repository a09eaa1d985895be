package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	appgames "igdb-games-service/internal/app/games"
	"igdb-games-service/internal/logging"
	"igdb-games-service/internal/metrics"
	"igdb-games-service/internal/store"
)

// Outcome label recorded when a newer submission replaced an in-flight search.
const OutcomeSuperseded = "superseded"

var (
	// ErrSuperseded is reported for a search replaced by a newer submission.
	ErrSuperseded = errors.New("search superseded")
	// ErrClosed is reported for submissions to a closed session.
	ErrClosed = errors.New("search session closed")
)

// Searcher runs one search. *games.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, term string) appgames.Outcome
}

// Options tunes a Session.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Session drives the search loop of one view: each submission cancels the previous one, waits out
// the debounce interval and publishes its results only while it is still the newest submission.
type Session struct {
	searcher Searcher
	view     *store.ViewState
	debounce time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewSession constructs a Session publishing into view. A nil view gets a fresh ViewState.
func NewSession(searcher Searcher, view *store.ViewState, opts Options) *Session {
	if view == nil {
		view = store.NewViewState()
	}
	debounce := opts.Debounce
	if debounce < 0 {
		debounce = 0
	}
	return &Session{
		searcher: searcher,
		view:     view,
		debounce: debounce,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// View returns the state this session publishes into.
func (s *Session) View() *store.ViewState {
	return s.view
}

// Submit searches for term. It blocks until the search finishes, is superseded, or ctx ends.
// The bool reports whether the outcome was published to the view; superseded and cancelled
// searches are discarded.
func (s *Session) Submit(ctx context.Context, term string) (appgames.Outcome, bool) {
	return s.Begin(ctx, term)()
}

// Begin claims the newest position for term and cancels the search it replaces. It does not
// block; the returned func waits out the debounce, runs the search and publishes, with the
// same results as Submit. Callers that run searches concurrently call Begin in arrival order.
func (s *Session) Begin(ctx context.Context, term string) func() (appgames.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() (appgames.Outcome, bool) {
			return appgames.Outcome{Kind: appgames.KindCancelled, Err: ErrClosed}, false
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.view.BeginSearch(term)

	return func() (appgames.Outcome, bool) {
		defer cancel()
		return s.run(ctx, runCtx, gen, term)
	}
}

func (s *Session) run(ctx, runCtx context.Context, gen uint64, term string) (appgames.Outcome, bool) {
	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		select {
		case <-timer.C:
		case <-runCtx.Done():
			timer.Stop()
			return s.discard(gen, runCtx.Err())
		}
	}

	out := s.searcher.Search(runCtx, term)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.metrics.RecordSearch(OutcomeSuperseded)
		return appgames.Outcome{Kind: appgames.KindCancelled, Err: ErrSuperseded}, false
	}
	if s.closed && out.Kind != appgames.KindCancelled {
		out = appgames.Outcome{Kind: appgames.KindCancelled, Err: ErrClosed}
	}
	s.metrics.RecordSearch(out.Kind.String())
	if out.Kind == appgames.KindCancelled {
		return out, false
	}

	logger := logging.FromContext(ctx, s.logger)
	if games, ok := out.Value(); ok {
		s.view.SetResults(term, games)
		if logger != nil {
			logger.Debug("search published",
				slog.String(logging.FieldTerm, term),
				slog.Int(logging.FieldCount, len(games)),
			)
		}
	} else {
		s.view.SetFailed(term)
		logging.Warn(logger, "search failed",
			slog.String(logging.FieldTerm, term),
			slog.String(logging.FieldErrorKind, out.Kind.String()),
		)
	}
	return out, true
}

// Close cancels any in-flight search and rejects further submissions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) discard(gen uint64, err error) (appgames.Outcome, bool) {
	s.mu.Lock()
	superseded := gen != s.gen
	s.mu.Unlock()

	if superseded {
		s.metrics.RecordSearch(OutcomeSuperseded)
		return appgames.Outcome{Kind: appgames.KindCancelled, Err: ErrSuperseded}, false
	}
	s.metrics.RecordSearch(appgames.KindCancelled.String())
	return appgames.Outcome{Kind: appgames.KindCancelled, Err: err}, false
}

package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	appgames "igdb-games-service/internal/app/games"
	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/providers"
)

// StubProvider is a test double for providers.GameProvider. Queries listed in ByID answer
// ModeByID lookups; everything else returns Games.
type StubProvider struct {
	Games  []domaingames.Game
	ByID   map[uint64]domaingames.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	mu      sync.Mutex
	queries []providers.Query
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, q providers.Query) ([]domaingames.Game, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if q.Mode == providers.ModeByID && s.ByID != nil {
		if g, ok := s.ByID[q.ID]; ok {
			return []domaingames.Game{g}, nil
		}
		return []domaingames.Game{}, nil
	}
	return s.Games, nil
}

// Queries returns the queries seen so far.
func (s *StubProvider) Queries() []providers.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]providers.Query(nil), s.queries...)
}

// NewService builds a games service backed by a StubProvider returning games.
func NewService(games []domaingames.Game) (*appgames.Service, *StubProvider) {
	p := &StubProvider{Games: games}
	return appgames.NewService(p), p
}

// NewFailingService builds a games service whose provider always fails with err.
func NewFailingService(err error) *appgames.Service {
	return appgames.NewService(&StubProvider{Err: err})
}

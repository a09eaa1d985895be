package providers

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "igdb-games-service/internal/domain/games"
)

type stubProvider struct {
	Games []domaingames.Game
	Err   error
	Calls atomic.Int32

	mu   sync.Mutex
	last Query
}

func (s *stubProvider) FetchGames(ctx context.Context, q Query) ([]domaingames.Game, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	s.last = q
	s.mu.Unlock()
	return s.Games, s.Err
}

func (s *stubProvider) LastQuery() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

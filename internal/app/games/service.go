package games

import (
	"context"
	"strings"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/providers"
)

// Kind tags the result of one fetch.
type Kind int

const (
	KindOK Kind = iota
	KindTransport
	KindDecode
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTransport:
		return providers.KindTransport
	case KindDecode:
		return providers.KindDecode
	case KindCancelled:
		return providers.KindCancelled
	default:
		return providers.KindUnknown
	}
}

// Outcome is the result of a fetch: games on success, otherwise the failure kind and its error.
// Failures carry no data.
type Outcome struct {
	Kind  Kind
	Games []domaingames.Game
	Err   error
}

// Value returns the games and true only for a successful fetch.
func (o Outcome) Value() ([]domaingames.Game, bool) {
	if o.Kind != KindOK {
		return nil, false
	}
	return o.Games, true
}

// First returns the first game of a successful fetch.
func (o Outcome) First() (domaingames.Game, bool) {
	games, ok := o.Value()
	if !ok || len(games) == 0 {
		return domaingames.Game{}, false
	}
	return games[0], true
}

// Failed reports a transport or decode failure. Cancellation is not a failure.
func (o Outcome) Failed() bool {
	return o.Kind == KindTransport || o.Kind == KindDecode
}

// Service runs game queries against a provider and classifies the results.
type Service struct {
	provider providers.GameProvider
}

// NewService constructs a Service backed by provider.
func NewService(provider providers.GameProvider) *Service {
	return &Service{provider: provider}
}

// Fetch runs q and classifies the result.
func (s *Service) Fetch(ctx context.Context, q providers.Query) Outcome {
	if s == nil || s.provider == nil {
		return Outcome{Kind: KindTransport, Err: providers.ErrProviderUnavailable}
	}

	games, err := s.provider.FetchGames(ctx, q)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return Outcome{Kind: classify(err), Err: err}
	}
	if games == nil {
		games = []domaingames.Game{}
	}
	return Outcome{Kind: KindOK, Games: games}
}

// Search looks games up by term. A blank term falls back to the popular listing.
func (s *Service) Search(ctx context.Context, term string) Outcome {
	return s.Fetch(ctx, QueryFor(term))
}

// Popular returns the popular-games listing.
func (s *Service) Popular(ctx context.Context) Outcome {
	return s.Fetch(ctx, providers.Popular())
}

// GameByID fetches a single game. A successful outcome with no games means the id is unknown.
func (s *Service) GameByID(ctx context.Context, id uint64) Outcome {
	return s.Fetch(ctx, providers.ByID(id))
}

// QueryFor maps a user-entered term to a query.
func QueryFor(term string) providers.Query {
	term = strings.TrimSpace(term)
	if term == "" {
		return providers.Popular()
	}
	return providers.Search(term)
}

func classify(err error) Kind {
	switch providers.ErrorKind(err) {
	case providers.KindCancelled:
		return KindCancelled
	case providers.KindDecode:
		return KindDecode
	default:
		return KindTransport
	}
}

package providers

import (
	"context"
	"strconv"

	domaingames "igdb-games-service/internal/domain/games"
)

// QueryMode selects the request strategy a provider uses for a fetch.
type QueryMode int

const (
	// ModeSearch looks games up by a free-text term.
	ModeSearch QueryMode = iota
	// ModePopular runs the fixed "rated, popular, newest first" query.
	ModePopular
	// ModeByID fetches a single game by its upstream id.
	ModeByID
)

func (m QueryMode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModePopular:
		return "popular"
	case ModeByID:
		return "by_id"
	default:
		return "unknown"
	}
}

// Query describes one logical "fetch games" operation.
type Query struct {
	Mode QueryMode
	Term string
	ID   uint64
}

// Search builds a search-by-term query.
func Search(term string) Query {
	return Query{Mode: ModeSearch, Term: term}
}

// Popular builds the default popular-games query.
func Popular() Query {
	return Query{Mode: ModePopular}
}

// ByID builds a single-game query.
func ByID(id uint64) Query {
	return Query{Mode: ModeByID, ID: id}
}

// Label returns a short description of the query for logs.
func (q Query) Label() string {
	switch q.Mode {
	case ModeSearch:
		return q.Term
	case ModeByID:
		return strconv.FormatUint(q.ID, 10)
	default:
		return ""
	}
}

// GameProvider defines how upstream game data is fetched and normalized.
// Implementations must abort in-flight work when ctx is cancelled and return ctx.Err().
type GameProvider interface {
	FetchGames(ctx context.Context, q Query) ([]domaingames.Game, error)
}

package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/providers"
	"igdb-games-service/internal/providers/igdb"
)

//go:embed games.json
var rawGames []byte

// Provider serves a static set of games decoded from an embedded IGDB payload. It is useful for
// local runs without credentials and for tests.
type Provider struct {
	games []domaingames.Game
}

// New decodes the embedded payload through the IGDB normalizer.
func New() (*Provider, error) {
	games, err := igdb.DecodeGames(rawGames)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return &Provider{games: games}, nil
}

// FetchGames filters the fixture set according to q.
func (p *Provider) FetchGames(ctx context.Context, q providers.Query) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domaingames.Game, 0, len(p.games))
	switch q.Mode {
	case providers.ModeSearch:
		needle := strings.ToLower(strings.TrimSpace(q.Term))
		for _, g := range p.games {
			if strings.Contains(strings.ToLower(g.Name), needle) {
				out = append(out, g)
			}
		}
	case providers.ModePopular:
		out = append(out, p.games...)
	case providers.ModeByID:
		for _, g := range p.games {
			if g.ID == q.ID {
				out = append(out, g)
				break
			}
		}
	default:
		return nil, fmt.Errorf("fixture: unsupported query mode %s", q.Mode)
	}
	return out, nil
}

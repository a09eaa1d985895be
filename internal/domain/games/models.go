package games

// NoCoverImage is shown for games whose upstream record has no cover.
const NoCoverImage = "https://images.igdb.com/igdb/image/upload/t_cover_big_2x/nocover.png"

// Platform is a normalized platform entry. Absent upstream fields are empty strings.
type Platform struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// SimilarGame is a lightweight reference to a related game.
// Image stays empty when the related game has no cover.
type SimilarGame struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Game is the canonical game shape exposed by the service. Every field carries a value;
// list fields are never nil once built through NewGame or the upstream mappers.
type Game struct {
	ID                uint64        `json:"id"`
	Name              string        `json:"name"`
	Image             string        `json:"image"`
	FirstReleaseDate  string        `json:"first_release_date"`
	Platforms         []Platform    `json:"platforms"`
	TotalRating       uint32        `json:"total_rating"`
	URL               string        `json:"url"`
	Summary           string        `json:"summary"`
	Genres            string        `json:"genres"`
	Themes            string        `json:"themes"`
	GameModes         string        `json:"game_modes"`
	InvolvedCompanies string        `json:"involved_companies"`
	Screenshots       []string      `json:"screenshots"`
	SimilarGames      []SimilarGame `json:"similar_games"`
}

// NewGame builds a Game with every default applied.
func NewGame(id uint64, name string) Game {
	return Game{
		ID:           id,
		Name:         name,
		Image:        NoCoverImage,
		Platforms:    []Platform{},
		Screenshots:  []string{},
		SimilarGames: []SimilarGame{},
	}
}

// PlatformAbbreviations returns the non-empty platform abbreviations in order.
func (g Game) PlatformAbbreviations() []string {
	out := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		if p.Abbreviation != "" {
			out = append(out, p.Abbreviation)
		}
	}
	return out
}

// Tier returns the presentation tier for the game's rating.
func (g Game) Tier() RatingTier {
	return TierFor(g.TotalRating)
}

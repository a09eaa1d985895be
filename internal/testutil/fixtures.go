package testutil

import domaingames "igdb-games-service/internal/domain/games"

// SampleGame returns a fully populated game fixture with the provided id and name.
func SampleGame(id uint64, name string) domaingames.Game {
	g := domaingames.NewGame(id, name)
	g.Image = "https://images.igdb.com/igdb/image/upload/t_cover_big_2x/sample.jpg"
	g.FirstReleaseDate = "2017-03-03"
	g.Platforms = []domaingames.Platform{{Name: "Nintendo Switch", Abbreviation: "Switch"}}
	g.TotalRating = 92
	g.Summary = "A sample game."
	g.Genres = "Adventure"
	return g
}

// SampleGames returns SampleGame fixtures for each name, numbered from 1.
func SampleGames(names ...string) []domaingames.Game {
	out := make([]domaingames.Game, 0, len(names))
	for i, name := range names {
		out = append(out, SampleGame(uint64(i+1), name))
	}
	return out
}

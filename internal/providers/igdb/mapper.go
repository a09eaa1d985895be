package igdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	domaingames "igdb-games-service/internal/domain/games"
	"igdb-games-service/internal/providers"
	"igdb-games-service/internal/timeutil"
)

var errMissing = errors.New("required field missing")

// DecodeGames normalizes a JSON array of raw IGDB game records.
// A single invalid record fails the whole batch.
func DecodeGames(data []byte) ([]domaingames.Game, error) {
	var raws []rawGame
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &providers.DecodeError{Err: err}
	}
	if raws == nil {
		return nil, &providers.DecodeError{Err: errors.New("expected a JSON array of games")}
	}

	out := make([]domaingames.Game, 0, len(raws))
	for i, raw := range raws {
		game, err := mapGame(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, game)
	}
	return out, nil
}

// DecodeGame normalizes a single raw IGDB game object.
func DecodeGame(data []byte) (domaingames.Game, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return domaingames.Game{}, &providers.DecodeError{Err: errors.New("expected a JSON object")}
	}
	var raw rawGame
	if err := json.Unmarshal(data, &raw); err != nil {
		return domaingames.Game{}, &providers.DecodeError{Err: err}
	}
	return mapGame(raw)
}

func mapGame(g rawGame) (domaingames.Game, error) {
	if g.ID == nil {
		return domaingames.Game{}, missing("id")
	}
	if g.Name == nil {
		return domaingames.Game{}, missing("name")
	}

	game := domaingames.NewGame(*g.ID, *g.Name)

	if g.Cover != nil {
		if g.Cover.URL == nil {
			return domaingames.Game{}, missing("cover.url")
		}
		game.Image = coverURL(*g.Cover.URL)
	}

	if g.FirstReleaseDate != nil {
		date, err := timeutil.DateFromEpoch(*g.FirstReleaseDate)
		if err != nil {
			return domaingames.Game{}, &providers.DecodeError{Field: "first_release_date", Err: err}
		}
		game.FirstReleaseDate = date
	}

	for _, p := range g.Platforms {
		platform, err := mapPlatform(p)
		if err != nil {
			return domaingames.Game{}, err
		}
		game.Platforms = append(game.Platforms, platform)
	}

	if g.TotalRating != nil {
		game.TotalRating = roundRating(*g.TotalRating)
	}
	game.URL = deref(g.URL)
	game.Summary = deref(g.Summary)

	var err error
	if game.Genres, err = joinNames("genres", g.Genres); err != nil {
		return domaingames.Game{}, err
	}
	if game.Themes, err = joinNames("themes", g.Themes); err != nil {
		return domaingames.Game{}, err
	}
	if game.GameModes, err = joinNames("game_modes", g.GameModes); err != nil {
		return domaingames.Game{}, err
	}
	if game.InvolvedCompanies, err = joinCompanies(g.InvolvedCompanies); err != nil {
		return domaingames.Game{}, err
	}

	for _, s := range g.Screenshots {
		if s.URL == nil {
			return domaingames.Game{}, missing("screenshots.url")
		}
		game.Screenshots = append(game.Screenshots, coverURL(*s.URL))
	}

	for _, sg := range g.SimilarGames {
		similar, err := mapSimilarGame(sg)
		if err != nil {
			return domaingames.Game{}, err
		}
		game.SimilarGames = append(game.SimilarGames, similar)
	}

	return game, nil
}

func mapPlatform(p rawPlatform) (domaingames.Platform, error) {
	platform := domaingames.Platform{
		Name:         deref(p.Name),
		Abbreviation: deref(p.Abbreviation),
	}
	if p.PlatformLogo != nil {
		if p.PlatformLogo.URL == nil {
			return domaingames.Platform{}, missing("platforms.platform_logo.url")
		}
		platform.Logo = secureURL(*p.PlatformLogo.URL)
	}
	return platform, nil
}

// mapSimilarGame leaves Image empty when there is no cover; only the top-level game gets the placeholder.
func mapSimilarGame(sg rawSimilarGame) (domaingames.SimilarGame, error) {
	if sg.ID == nil {
		return domaingames.SimilarGame{}, missing("similar_games.id")
	}
	if sg.Name == nil {
		return domaingames.SimilarGame{}, missing("similar_games.name")
	}
	similar := domaingames.SimilarGame{ID: *sg.ID, Name: *sg.Name}
	if sg.Cover != nil {
		if sg.Cover.URL == nil {
			return domaingames.SimilarGame{}, missing("similar_games.cover.url")
		}
		similar.Image = coverURL(*sg.Cover.URL)
	}
	return similar, nil
}

func joinNames(field string, items []rawNamed) (string, error) {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name == nil {
			return "", missing(field + ".name")
		}
		names = append(names, *item.Name)
	}
	return strings.Join(names, ", "), nil
}

func joinCompanies(items []rawInvolvedCompany) (string, error) {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Company == nil {
			return "", missing("involved_companies.company")
		}
		if item.Company.Name == nil {
			return "", missing("involved_companies.company.name")
		}
		names = append(names, *item.Company.Name)
	}
	return strings.Join(names, ", "), nil
}

// secureURL turns IGDB's protocol-relative and plain http image URLs into https URLs.
func secureURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "http://"):
		return "https://" + strings.TrimPrefix(raw, "http://")
	default:
		return "https:" + raw
	}
}

// coverURL is secureURL plus the thumbnail-to-large size upgrade used for covers and screenshots.
func coverURL(raw string) string {
	return strings.ReplaceAll(secureURL(raw), thumbSize, coverSize)
}

func roundRating(r float64) uint32 {
	rounded := math.Round(r)
	switch {
	case rounded <= 0:
		return 0
	case rounded >= 100:
		return 100
	default:
		return uint32(rounded)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func missing(field string) error {
	return &providers.DecodeError{Field: field, Err: errMissing}
}

package games

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewGameAppliesDefaults(t *testing.T) {
	g := NewGame(7, "Game")

	if g.Image != NoCoverImage {
		t.Fatalf("expected placeholder image, got %s", g.Image)
	}
	if g.Platforms == nil || g.Screenshots == nil || g.SimilarGames == nil {
		t.Fatalf("expected non-nil list fields, got %+v", g)
	}
	if g.FirstReleaseDate != "" || g.Genres != "" || g.TotalRating != 0 {
		t.Fatalf("expected empty scalar defaults, got %+v", g)
	}
}

func TestGameJSONUsesSnakeCaseAndEmptyLists(t *testing.T) {
	data, err := json.Marshal(NewGame(1, "Game A"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		`"first_release_date":""`,
		`"total_rating":0`,
		`"game_modes":""`,
		`"involved_companies":""`,
		`"platforms":[]`,
		`"screenshots":[]`,
		`"similar_games":[]`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestPlatformAbbreviationsSkipsEmpty(t *testing.T) {
	g := NewGame(1, "Game")
	g.Platforms = []Platform{{Abbreviation: "PC"}, {Name: "Unknown"}, {Abbreviation: "PS5"}}

	got := g.PlatformAbbreviations()
	if len(got) != 2 || got[0] != "PC" || got[1] != "PS5" {
		t.Fatalf("unexpected abbreviations %v", got)
	}
}

package views

import (
	"bytes"
	"strings"
	"testing"

	domaingames "igdb-games-service/internal/domain/games"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected templates to parse, got %v", err)
	}
	return r
}

func sampleGame() domaingames.Game {
	g := domaingames.NewGame(1942, "The Witcher 3: Wild Hunt")
	g.Image = "https://images.igdb.com/igdb/image/upload/t_cover_big_2x/co1wyy.jpg"
	g.FirstReleaseDate = "2015-05-19"
	g.TotalRating = 93
	g.Platforms = []domaingames.Platform{
		{Name: "PC (Microsoft Windows)", Abbreviation: "PC", Logo: "https://images.igdb.com/logo.png"},
		{Name: "PlayStation 4", Abbreviation: "PS4"},
	}
	g.Genres = "Role-playing (RPG), Adventure"
	g.Summary = "Geralt <hunts> monsters."
	g.Screenshots = []string{"https://images.igdb.com/sc1.jpg"}
	g.SimilarGames = []domaingames.SimilarGame{{ID: 472, Name: "Skyrim"}}
	return g
}

func TestIndexRendersGrid(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t).Index(&buf, IndexPage{Term: "witcher", Games: []domaingames.Game{sampleGame()}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`href="/game/1942"`,
		"The Witcher 3: Wild Hunt",
		"2015-05-19",
		"PC, PS4",
		"rating-masterpiece",
		`value="witcher"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
	if strings.Contains(body, `<p class="message">`) {
		t.Fatalf("did not expect a message for a non-empty result")
	}
}

func TestIndexMessages(t *testing.T) {
	r := newRenderer(t)

	var empty bytes.Buffer
	if err := r.Index(&empty, IndexPage{Term: "nothing"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(empty.String(), `<p class="message">No games found.</p>`) {
		t.Fatalf("expected empty message")
	}

	var failed bytes.Buffer
	if err := r.Index(&failed, IndexPage{Term: "zelda", Failed: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(failed.String(), `<p class="message">Error loading games.</p>`) {
		t.Fatalf("expected error message")
	}
}

func TestIndexEscapesTerm(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(t).Index(&buf, IndexPage{Term: `"><script>alert(1)</script>`}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Fatalf("expected term to be escaped")
	}
}

func TestGameRendersDetail(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(t).Game(&buf, GamePage{Game: sampleGame(), Found: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		"<h2>The Witcher 3: Wild Hunt</h2>",
		"Geralt &lt;hunts&gt; monsters.",
		"Role-playing (RPG), Adventure",
		`src="https://images.igdb.com/logo.png"`,
		`src="https://images.igdb.com/sc1.jpg"`,
		`href="/game/472"`,
		"rating-masterpiece",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "Themes:") {
		t.Fatalf("empty themes should be omitted")
	}
}

func TestGameMessages(t *testing.T) {
	r := newRenderer(t)

	var missing bytes.Buffer
	if err := r.Game(&missing, GamePage{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(missing.String(), EmptyText) {
		t.Fatalf("expected not found message")
	}

	var failed bytes.Buffer
	if err := r.Game(&failed, GamePage{Failed: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(failed.String(), ErrorText) {
		t.Fatalf("expected error message")
	}
}

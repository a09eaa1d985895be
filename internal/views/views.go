package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	domaingames "igdb-games-service/internal/domain/games"
)

// User-facing messages.
const (
	EmptyText = "No games found."
	ErrorText = "Error loading games."
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"tierClass": func(rating uint32) string { return domaingames.TierFor(rating).CSSClass() },
	"join":      func(items []string, sep string) string { return strings.Join(items, sep) },
}

// IndexPage is the data for the search page.
type IndexPage struct {
	Term   string
	Games  []domaingames.Game
	Failed bool
}

func (IndexPage) EmptyText() string { return EmptyText }
func (IndexPage) ErrorText() string { return ErrorText }

// GamePage is the data for the detail page.
type GamePage struct {
	Game   domaingames.Game
	Found  bool
	Failed bool
}

func (GamePage) EmptyText() string { return EmptyText }
func (GamePage) ErrorText() string { return ErrorText }

// Renderer renders the embedded HTML pages.
type Renderer struct {
	index *template.Template
	game  *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	index, err := parse("index.html")
	if err != nil {
		return nil, err
	}
	game, err := parse("game.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{index: index, game: game}, nil
}

// Index renders the search page into w.
func (r *Renderer) Index(w io.Writer, page IndexPage) error {
	return render(w, r.index, page)
}

// Game renders the detail page into w.
func (r *Renderer) Game(w io.Writer, page GamePage) error {
	return render(w, r.game, page)
}

func parse(page string) (*template.Template, error) {
	tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return tmpl, nil
}

// render executes into a buffer first so a template error never leaves a half-written page.
func render(w io.Writer, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Package web holds the embedded page templates, stylesheets and themes.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/render"
	"github.com/timmy/haikuforge/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Theme is the decorative variant of the page.
type Theme struct {
	Name           string
	Title          string
	Tagline        string
	Stylesheet     string
	Placeholder    string
	ButtonLabel    string
	ArchiveHeading string
	EmptyArchive   string
	Ornament       string
}

var themes = map[string]Theme{
	"aurora": {
		Name:           "aurora",
		Title:          "Bashobot: Haiku Forge",
		Tagline:        "Weave Poetry with AI Whispers",
		Stylesheet:     "/static/aurora.css",
		Placeholder:    "Whisper your inspiration...",
		ButtonLabel:    "Conjure Haiku",
		ArchiveHeading: "Haiku Archives",
		EmptyArchive:   "No haiku echoes yet... Be the first poet",
		Ornament:       "🍃",
	},
	"scroll": {
		Name:           "scroll",
		Title:          "Bashobot: Haiku Scroll",
		Tagline:        "Ink, brush and a little machine wind",
		Stylesheet:     "/static/scroll.css",
		Placeholder:    "Name a season, a place, a feeling...",
		ButtonLabel:    "Brush Haiku",
		ArchiveHeading: "The Scroll",
		EmptyArchive:   "The scroll is still blank... Be the first poet",
		Ornament:       "📜",
	},
}

// Card is the freshly generated poem shown above the archive.
type Card struct {
	Poem  domain.Poem
	Color service.Color
}

// Page is the data handed to index.html.
type Page struct {
	Theme    Theme
	Topic    string
	Fresh    *Card
	Messages []service.Message
	Gallery  service.Gallery
}

// NewPage builds the view of one interaction. A generated poem is shown
// even when saving it failed. Without a poem the topic stays in the input.
func NewPage(theme Theme, out *service.Outcome) Page {
	page := Page{
		Theme:    theme,
		Messages: out.Messages(),
		Gallery:  out.Gallery,
	}
	if out.Poem != nil {
		page.Fresh = &Card{Poem: *out.Poem, Color: out.Color}
	} else {
		page.Topic = out.Topic
	}
	return page
}

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

// Templates parses the embedded page templates with the render helpers.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(render.FuncMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return tmpl, nil
}

// Static serves the embedded stylesheets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

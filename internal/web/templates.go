package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/justestif/go-spotify-mood-playlist/internal/db"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.Execute(w, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	// Load base layout
	layoutPattern := "layouts/*.html"
	layouts, err := fs.Glob(templatesFS, layoutPattern)
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	// Load partials
	partialPattern := "partials/*.html"
	partials, err := fs.Glob(templatesFS, partialPattern)
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	// Load each page template with layouts and partials
	pagePattern := "pages/*.html"
	pages, err := fs.Glob(templatesFS, pagePattern)
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		// Create a new template for each page
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")] // Remove .html extension

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		// Execute "base" layout if it exists, otherwise the page itself
		t.templates[name] = tmpl
	}

	// Load partials as standalone templates for HTMX fragments
	for _, partial := range partials {
		name := filepath.Base(partial)
		name = name[:len(name)-len(".html")] // Remove .html extension

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns an HSL color for energy and valence.
		// Energy moves the hue from cool indigo to warm orange, valence
		// raises saturation and lightness.
		"moodColor": func(energy, valence float64) template.CSS {
			hue := 264 - (energy * 229)
			if hue < 0 {
				hue += 360
			}
			saturation := 60 + (valence * 40)
			lightness := 40 + (valence * 20)
			return template.CSS(fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hue, saturation, lightness))
		},

		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},

		// percent renders a 0-1 target as a whole percentage.
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	User        *UserData
	Flash       *FlashMessage
	CurrentPath string
}

// UserData contains authenticated user information.
type UserData struct {
	ID   string
	Name string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Authenticated  bool
	HistoryEnabled bool
	History        []GenerationData
}

// GenerationData contains data for one past playlist in templates.
type GenerationData struct {
	ID           string
	PlaylistName string
	PlaylistURL  string
	Mood         string
	Palette      []string
	TrackCount   int
	Energy       float64
	Valence      float64
	HasTargets   bool
	CreatedAt    time.Time
}

func toGenerationData(gens []db.Generation) []GenerationData {
	out := make([]GenerationData, 0, len(gens))
	for _, g := range gens {
		d := GenerationData{
			ID:           g.ID.String(),
			PlaylistName: g.PlaylistName,
			PlaylistURL:  spotify.PlaylistURL(g.PlaylistID),
			TrackCount:   g.TrackCount,
			CreatedAt:    g.CreatedAt,
		}
		if g.MoodName != nil {
			d.Mood = *g.MoodName
		}
		if g.Targets != nil {
			d.Energy = g.Targets.Energy
			d.Valence = g.Targets.Valence
			d.HasTargets = true
		}
		for _, c := range g.Palette {
			d.Palette = append(d.Palette, c.Hex)
		}
		out = append(out, d)
	}
	return out
}

package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/linesmerrill/scammer-blacklist/models"
	"github.com/linesmerrill/scammer-blacklist/scammers"
)

//go:embed layout.gohtml partials/*.gohtml pages/*.gohtml
var files embed.FS

var funcs = template.FuncMap{
	"badgeStyle": func(c scammers.BadgeColors) template.CSS {
		return template.CSS(fmt.Sprintf("background-color:%s;color:%s", c.Background, c.Foreground))
	},
	"scamLabel": func(s models.ScamType) string {
		return s.Label()
	},
	"fieldError": func(errs scammers.FieldErrors, field string) string {
		return errs[field]
	},
	"str": func(s models.ScamType) string {
		return string(s)
	},
}

// Renderer executes the page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout and partials
func New() (*Renderer, error) {
	pageFiles, err := fs.Glob(files, "pages/*.gohtml")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, pf := range pageFiles {
		t, err := template.New("layout.gohtml").Funcs(funcs).ParseFS(files, "layout.gohtml", "partials/*.gohtml", pf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", pf, err)
		}
		r.pages[strings.TrimSuffix(path.Base(pf), ".gohtml")] = t
	}
	return r, nil
}

// Render writes page with data. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.gohtml", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Package web renders the booking site's server-side HTML pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates
var files embed.FS

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("Mon 01/02/2006 3:04 PM")
	},
	"join": strings.Join,
}

// Renderer holds the parsed page templates. Each page is parsed together
// with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template under templates/pages.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(files, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("read page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html", path.Join("templates/pages", name))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Page bundles the data handed to the layout.
type Page struct {
	Title string
	Flash []string
	Data  interface{}
}

// Render writes the named page with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "layout.html", page)
}

// Package view renders the dashboard's HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html templates/partials/*.html
var files embed.FS

// Page template names.
const (
	PageLogin       = "login.html"
	PageDashboard   = "dashboard.html"
	PageAnalytics   = "analytics.html"
	PageAccount     = "account.html"
	PagePlaceholder = "placeholder.html"
	PageLoading     = "loading.html"
)

// Renderer executes one template set per page, each sharing the layout and partials.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every page under templates/.
func NewRenderer() (*Renderer, error) {
	return newRenderer(files)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	shared, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		name := path.Base(p)
		if name == "layout.html" {
			continue
		}
		t, err := template.Must(shared.Clone()).ParseFS(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	// Execute into a buffer so a template error never leaves half a page on the wire.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"initials": initials,
	"add":      func(a, b int) int { return a + b },
}

func initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

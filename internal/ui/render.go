// Package ui renders the dashboard screens from embedded HTML templates.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
)

//go:embed templates/*.html
var files embed.FS

// Date layouts used on screen.
const (
	LongDate  = "Monday, 02 January 2006"
	ShortDate = "Mon 02 Jan"
	DayMonth  = "2 Jan"
)

var funcs = template.FuncMap{
	"rand":      finance.Rand,
	"randWhole": finance.RandWhole,
	"pct": func(d decimal.Decimal, places int) string {
		return finance.Percent(d, int32(places))
	},
	"href":      func(id string) string { return Href(view.ID(id)) },
	"longDate":  func(t time.Time) string { return t.Format(LongDate) },
	"shortDate": func(t time.Time) string { return t.Format(ShortDate) },
	"dayMonth":  func(t time.Time) string { return t.Format(DayMonth) },
}

// Renderer holds one parsed template set per screen.
type Renderer struct {
	pages map[view.ID]*template.Template
}

// NewRenderer parses the embedded templates. Every screen must have one.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[view.ID]*template.Template)}
	for _, id := range view.All() {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+string(id)+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", id, err)
		}
		r.pages[id] = t
	}
	return r, nil
}

// Render writes p with status. Nothing is written if the template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, p Page) error {
	t, ok := r.pages[p.View]
	if !ok {
		return fmt.Errorf("no template for view %q", p.View)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("render %s: %w", p.View, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

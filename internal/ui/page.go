package ui

import (
	"time"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
)

// Header is the shop banner above the dashboard menu.
type Header struct {
	ShopName  string
	Location  string
	Code      string
	Plan      string
	TrialDays int
	ShowTrial bool
}

// NewHeader builds the banner for sh. The trial countdown is shown only for
// trial shops whose end date parses.
func NewHeader(sh *shop.Shop, now time.Time) *Header {
	h := &Header{
		ShopName: sh.DisplayName(),
		Location: sh.DisplayLocation(),
		Code:     sh.ID,
		Plan:     sh.PlanLabel(shop.PlanTrial),
	}
	if h.Code == "" {
		h.Code = "---"
	}
	h.TrialDays, h.ShowTrial = sh.TrialDays(now)
	return h
}

// MenuItem is one entry of the dashboard menu.
type MenuItem struct {
	Icon   string
	Label  string
	Href   string
	Active bool
}

// Menu builds the dashboard menu with active highlighted.
func Menu(active view.ID) []MenuItem {
	items := make([]MenuItem, 0, len(view.Menu))
	for _, e := range view.Menu {
		items = append(items, MenuItem{
			Icon:   e.Icon,
			Label:  e.Label,
			Href:   Href(e.ID),
			Active: e.ID == active,
		})
	}
	return items
}

// Href is the path that shows id.
func Href(id view.ID) string {
	if id == view.Login {
		return "/login"
	}
	return "/app/" + string(id)
}

// Page is everything a screen template can use.
type Page struct {
	Title   string
	View    view.ID
	Header  *Header
	Menu    []MenuItem
	Notices []Notice
	// Form echoes submitted values back into inputs; Fields holds per-field errors.
	Form    map[string]string
	Fields  map[string]string
	Support string
	Today   time.Time
	Data    any
}

// Notify appends notices.
func (p *Page) Notify(n ...Notice) {
	p.Notices = append(p.Notices, n...)
}

// HasErrors reports whether the page carries field errors.
func (p *Page) HasErrors() bool { return len(p.Fields) > 0 }

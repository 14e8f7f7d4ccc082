// Package help renders the static help and support screen.
package help

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/phone"
)

// HelpData is what the help template reads.
type HelpData struct {
	Support     string
	SupportLink string
}

type Handler struct {
	dash *dashboard.Dashboard
	data HelpData
}

// NewHandler prepares the help screen for the support number, read as region.
func NewHandler(dash *dashboard.Dashboard, region string) *Handler {
	data := HelpData{Support: dash.Support()}
	if link, err := phone.WhatsAppLink(dash.Support(), region, ""); err == nil {
		data.SupportLink = link
	}
	return &Handler{dash: dash, data: data}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Help, h.show)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, st session.State) {
	p := h.dash.NewPage(w, r, st, "Help & Support")
	p.Data = h.data
	h.dash.Render(w, http.StatusOK, p)
}

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

const moduleName = "account"

// Handler exposes the account screen.
type Handler struct {
	service Service
	dash    *dashboard.Dashboard
	log     logrus.FieldLogger
}

func NewHandler(service Service, dash *dashboard.Dashboard, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, dash: dash, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Account, h.show)
	r.With(h.dash.RequireShop).Post("/app/account/pay", h.pay)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, st session.State) {
	p := h.dash.NewPage(w, r, st, "My Account")
	p.Data = h.service.Overview(st.Shop, h.dash.Now())
	h.dash.Render(w, http.StatusOK, p)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	sess, err := h.service.PayNow(r.Context(), st.Shop)
	if err != nil {
		logger.LogError(h.log, moduleName, "pay", "starting instant EFT", st.Shop.ID, err)
		h.dash.Redirect(w, r, view.Account,
			ui.Error("Payment could not be started. WhatsApp "+h.dash.Support()+" for help."))
		return
	}
	notice := ui.Info(sess.Message)
	if sess.RedirectURL != "" {
		notice = notice.WithLink(sess.RedirectURL, "Continue to payment")
	}
	h.dash.Redirect(w, r, view.Account, notice)
}

package credit

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

const moduleName = "credit"

// Tabs of the credit screen.
const (
	TabOwes = "owes"
	TabAdd  = "add"
)

const (
	MsgCheckFields     = "Check the highlighted fields"
	MsgUnknownCustomer = "That customer is no longer on your list"
	MsgPaymentRange    = "Payment must be between R0 and what the customer owes"
)

// CreditData is what the credit template reads.
type CreditData struct {
	Tab       string
	Ledger    *Ledger
	LoadError string
}

// Handler exposes the credit screen.
type Handler struct {
	service Service
	dash    *dashboard.Dashboard
	log     logrus.FieldLogger
}

func NewHandler(service Service, dash *dashboard.Dashboard, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, dash: dash, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Credit, h.show)
	r.Route("/app/credit/customers", func(r chi.Router) {
		r.Use(h.dash.RequireShop)
		r.Post("/", h.add)
		r.Post("/{id}/remind", h.remind)
		r.Post("/{id}/payments", h.recordPayment)
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, st session.State) {
	tab := TabOwes
	if r.URL.Query().Get("tab") == TabAdd {
		tab = TabAdd
	}
	h.render(w, r, st, http.StatusOK, tab, nil)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, st session.State, status int, tab string, form *dashboard.Form, notices ...ui.Notice) {
	st = st.Navigate(view.Credit)
	p := h.dash.NewPage(w, r, st, "Credit Customers")
	p.Notify(notices...)
	p.Form = map[string]string{"limit": DefaultLimit.String()}
	if form != nil {
		p.Form = form.Values
		p.Fields = form.Errors
	}

	data := CreditData{Tab: tab}
	ledger, err := h.service.Ledger(r.Context(), st.Shop.ID)
	if err != nil {
		data.LoadError = backend.Message(err)
	}
	data.Ledger = ledger
	p.Data = data
	h.dash.Render(w, status, p)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	form, err := dashboard.ParseForm(r)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := NewCustomer{
		Name:  form.String("name"),
		Phone: form.String("phone"),
		Limit: form.Decimal("limit", DefaultLimit),
	}
	if !form.Valid() {
		h.render(w, r, st, http.StatusUnprocessableEntity, TabAdd, form, ui.Error(MsgCheckFields))
		return
	}

	added, err := h.service.Add(r.Context(), st.Shop.ID, req)
	if form.Merge(err) {
		h.render(w, r, st, http.StatusUnprocessableEntity, TabAdd, form, ui.Error(MsgCheckFields))
		return
	}
	if err != nil {
		logger.LogError(h.log, moduleName, "add", "adding credit customer", req.Name, err)
		h.render(w, r, st, http.StatusOK, TabAdd, form, ui.Error("Could not add customer: "+backend.Message(err)))
		return
	}
	h.dash.Redirect(w, r, view.Credit,
		ui.Success("Added "+added.Name+" with "+finance.Rand(added.Limit)+" limit"))
}

func (h *Handler) remind(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	id := chi.URLParam(r, "id")

	rem, err := h.service.Remind(r.Context(), st.Shop, id)
	if err != nil {
		h.redirectFailure(w, r, "remind", id, err)
		return
	}
	notice := ui.Success("WhatsApp reminder sent to " + rem.Customer.Name + "!")
	if rem.Link != "" {
		notice = notice.WithLink(rem.Link, "Open WhatsApp")
	}
	h.dash.Redirect(w, r, view.Credit, notice)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	id := chi.URLParam(r, "id")
	form, err := dashboard.ParseForm(r)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	amount := form.Decimal("amount", decimal.Zero)
	if !form.Valid() {
		h.dash.Redirect(w, r, view.Credit, ui.Error(MsgPaymentRange))
		return
	}

	pay, err := h.service.RecordPayment(r.Context(), st.Shop.ID, id, amount)
	if err != nil {
		h.redirectFailure(w, r, "recordPayment", id, err)
		return
	}
	h.dash.Redirect(w, r, view.Credit,
		ui.Success("Recorded "+finance.Rand(pay.Amount)+" payment!"),
		ui.Info(pay.Customer.Name+" now owes "+finance.Rand(pay.Customer.Owed)),
	)
}

func (h *Handler) redirectFailure(w http.ResponseWriter, r *http.Request, funcName, id string, err error) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		h.dash.Redirect(w, r, view.Credit, ui.Warning(MsgUnknownCustomer))
	case errors.Is(err, ErrPaymentOutOfRange):
		h.dash.Redirect(w, r, view.Credit, ui.Error(MsgPaymentRange))
	default:
		logger.LogError(h.log, moduleName, funcName, "updating credit customer", id, err)
		h.dash.Redirect(w, r, view.Credit, ui.Error("Failed: "+backend.Message(err)))
	}
}

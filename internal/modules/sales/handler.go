package sales

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

const moduleName = "sales"

const (
	MsgNoDataDaily          = "No data yet. Enter your first day below!"
	MsgNoDataWeekly         = "No data yet. Submit daily entries to see your week!"
	MsgNothingToRecord      = "Enter at least sales or expenses"
	MsgCheckFields          = "Check the highlighted fields"
	MsgReportComing         = "Full report coming to your WhatsApp by 8pm"
	MsgSubscriptionRequired = "Subscription required. Go to 'Account' tab."
)

// DailyData is what the daily entry template reads.
type DailyData struct {
	Yesterday *Record
	LoadError string
	Result    *DailyResult
}

// DailyResult previews an accepted entry. Profit is the API's figure.
type DailyResult struct {
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
	Alerts   []string
}

// WeeklyData is what the weekly summary template reads.
type WeeklyData struct {
	Week      *Week
	Chart     ui.Chart
	LoadError string
}

// Handler exposes the daily entry and weekly summary screens.
type Handler struct {
	service Service
	dash    *dashboard.Dashboard
	log     logrus.FieldLogger
}

func NewHandler(service Service, dash *dashboard.Dashboard, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, dash: dash, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Daily, h.showDaily)
	h.dash.Mount(view.Weekly, h.showWeekly)
	r.With(h.dash.RequireShop).Post("/app/daily", h.submit)
}

// ── Daily entry ───────────────────────────────────────────────────────────────

func (h *Handler) showDaily(w http.ResponseWriter, r *http.Request, st session.State) {
	h.renderDaily(w, r, st, http.StatusOK, nil, nil)
}

func (h *Handler) renderDaily(w http.ResponseWriter, r *http.Request, st session.State, status int, form *dashboard.Form, result *DailyResult, notices ...ui.Notice) {
	st = st.Navigate(view.Daily)
	p := h.dash.NewPage(w, r, st, "")
	p.Notify(notices...)
	if form != nil {
		p.Form = form.Values
		p.Fields = form.Errors
	}

	data := DailyData{Result: result}
	latest, err := h.service.Latest(r.Context(), st.Shop.ID)
	if err != nil {
		data.LoadError = backend.Message(err)
		if backend.IsConnection(err) {
			data.LoadError += ": " + backend.Detail(err)
		}
	}
	data.Yesterday = latest
	p.Data = data
	h.dash.Render(w, status, p)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	form, err := dashboard.ParseForm(r)
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	entry := Entry{
		Revenue:  form.Decimal("revenue", decimal.Zero),
		Expenses: form.Decimal("expenses", decimal.Zero),
		Bread:    form.Int("bread", 0),
		Drinks:   form.Int("drinks", 0),
		Airtime:  form.Int("airtime", 0),
		Notes:    form.String("notes"),
	}
	if !form.Valid() {
		h.renderDaily(w, r, st, http.StatusUnprocessableEntity, form, nil, ui.Error(MsgCheckFields))
		return
	}

	receipt, err := h.service.Submit(r.Context(), st.Shop.ID, entry)
	switch {
	case errors.Is(err, ErrNothingToRecord):
		h.renderDaily(w, r, st, http.StatusUnprocessableEntity, form, nil, ui.Warning(MsgNothingToRecord))
		return
	case form.Merge(err):
		h.renderDaily(w, r, st, http.StatusUnprocessableEntity, form, nil, ui.Error(MsgCheckFields))
		return
	case err != nil:
		h.renderDaily(w, r, st, http.StatusOK, form, nil, h.failure(st, err)...)
		return
	}

	result := &DailyResult{
		Revenue:  entry.Revenue,
		Expenses: entry.Expenses,
		Profit:   receipt.Profit,
		Alerts:   receipt.Alerts,
	}
	h.renderDaily(w, r, st, http.StatusOK, nil, result,
		ui.Success("Recorded! Today's profit: "+finance.Rand(receipt.Profit)),
		ui.Info(MsgReportComing),
	)
}

func (h *Handler) failure(st session.State, err error) []ui.Notice {
	if backend.MentionsPayment(err) {
		return []ui.Notice{ui.Error(MsgSubscriptionRequired).WithLink(ui.Href(view.Account), "Go to Account")}
	}
	logger.LogError(h.log, moduleName, "submit", "recording daily entry", st.Shop.ID, err)
	var notices []ui.Notice
	if backend.IsConnection(err) {
		notices = append(notices, ui.Error("Failed to save: "+backend.Detail(err)))
	}
	return append(notices,
		ui.Error("Failed: "+backend.Message(err)),
		ui.Info("WhatsApp backup: "+h.dash.Support()),
	)
}

// ── Weekly summary ────────────────────────────────────────────────────────────

func (h *Handler) showWeekly(w http.ResponseWriter, r *http.Request, st session.State) {
	p := h.dash.NewPage(w, r, st, "")
	var data WeeklyData

	week, err := h.service.Week(r.Context(), st.Shop.ID)
	if err != nil {
		data.LoadError = backend.Message(err)
		if backend.IsConnection(err) {
			data.LoadError += ": " + backend.Detail(err)
		}
	} else {
		data.Week = week
		data.Chart = weekChart(week)
	}
	p.Data = data
	h.dash.Render(w, http.StatusOK, p)
}

func weekChart(week *Week) ui.Chart {
	labels := make([]string, len(week.Records))
	revenue := make([]decimal.Decimal, len(week.Records))
	profit := make([]decimal.Decimal, len(week.Records))
	for i, rec := range week.Records {
		labels[i] = rec.Date.Format(ui.ShortDate)
		revenue[i] = rec.Revenue
		profit[i] = rec.NetProfit()
	}
	return ui.LineChart(labels,
		ui.Series{Name: "Revenue", Color: "#2E7D32", Values: revenue},
		ui.Series{Name: "Profit", Color: "#1565C0", Values: profit},
	)
}

package stock

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

const moduleName = "stock"

const (
	MsgCheckFields     = "Check the highlighted fields"
	MsgUnknownProduct  = "That product is no longer on your list"
	MsgNotLow          = "That product is still well stocked"
	msgAddFailedPrefix = "Could not add product: "
)

// StockData is what the stock template reads.
type StockData struct {
	Products  []Product
	LoadError string
	// AddOpen keeps the add form expanded after a failed submission.
	AddOpen bool
}

// Handler exposes the stock screen.
type Handler struct {
	service Service
	dash    *dashboard.Dashboard
	log     logrus.FieldLogger
}

func NewHandler(service Service, dash *dashboard.Dashboard, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, dash: dash, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Stock, h.show)
	r.Route("/app/stock/products", func(r chi.Router) {
		r.Use(h.dash.RequireShop)
		r.Post("/", h.add)
		r.Post("/{id}/order", h.order)
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, st session.State) {
	h.render(w, r, st, http.StatusOK, nil)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, st session.State, status int, form *dashboard.Form, notices ...ui.Notice) {
	st = st.Navigate(view.Stock)
	p := h.dash.NewPage(w, r, st, "Stock Levels")
	p.Notify(notices...)
	p.Form = map[string]string{"min": strconv.Itoa(DefaultThreshold)}

	data := StockData{}
	if form != nil {
		p.Form = form.Values
		p.Fields = form.Errors
		data.AddOpen = !form.Valid()
	}

	products, err := h.service.List(r.Context(), st.Shop.ID)
	if err != nil {
		data.LoadError = backend.Message(err)
	}
	data.Products = products
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
	req := NewProduct{
		Name:      form.String("name"),
		BuyPrice:  form.Decimal("buy_price", decimal.Zero),
		SellPrice: form.Decimal("sell_price", decimal.Zero),
		Stock:     form.Int("stock", 0),
		Threshold: form.Int("min", DefaultThreshold),
	}
	if !form.Valid() {
		h.render(w, r, st, http.StatusUnprocessableEntity, form, ui.Error(MsgCheckFields))
		return
	}

	added, err := h.service.Add(r.Context(), st.Shop.ID, req)
	if form.Merge(err) {
		h.render(w, r, st, http.StatusUnprocessableEntity, form, ui.Error(MsgCheckFields))
		return
	}
	if err != nil {
		logger.LogError(h.log, moduleName, "add", "adding product", req.Name, err)
		h.render(w, r, st, http.StatusOK, form, ui.Error(msgAddFailedPrefix+backend.Message(err)))
		return
	}
	h.dash.Redirect(w, r, view.Stock, ui.Success("Added "+added.Name))
}

func (h *Handler) order(w http.ResponseWriter, r *http.Request) {
	st := dashboard.StateFrom(r.Context())
	p, err := h.service.Order(r.Context(), st.Shop.ID, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrProductNotFound):
		h.dash.Redirect(w, r, view.Stock, ui.Warning(MsgUnknownProduct))
	case errors.Is(err, ErrNotLow):
		h.dash.Redirect(w, r, view.Stock, ui.Warning(MsgNotLow))
	case err != nil:
		logger.LogError(h.log, moduleName, "order", "placing order", chi.URLParam(r, "id"), err)
		h.dash.Redirect(w, r, view.Stock, ui.Error("Order failed: "+backend.Message(err)))
	default:
		h.dash.Redirect(w, r, view.Stock, ui.Success("Order placed for "+p.Name))
	}
}

// Package auth signs shops in by code, creates trial shops and signs out.
package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

const moduleName = "auth"

const (
	MsgEnterCode      = "Enter your shop code"
	MsgShopNotFound   = "Shop not found. Check your code or start a trial."
	MsgFillRequired   = "Fill all required fields"
	MsgCheckWhatsApp  = "Check WhatsApp for your welcome message"
	MsgLoginWithCode  = "Log in with your new code to open your shop."
	msgCreatedPrefix  = "Created! Your code: "
	msgConnectionInfo = "Connection error: "
)

// Tabs of the login screen.
const (
	TabLogin  = "login"
	TabSignup = "signup"
)

// LoginData is what the login template reads.
type LoginData struct {
	Tab     string
	NewCode string
}

// Handler exposes the login screen and its forms.
type Handler struct {
	shops shop.Service
	dash  *dashboard.Dashboard
	log   logrus.FieldLogger
}

func NewHandler(shops shop.Service, dash *dashboard.Dashboard, log logrus.FieldLogger) *Handler {
	return &Handler{shops: shops, dash: dash, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.dash.Mount(view.Login, h.show)
	r.Post("/login", h.login)
	r.Post("/signup", h.signup)
	r.Post("/logout", h.logout)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, st session.State) {
	tab := TabLogin
	if r.URL.Query().Get("tab") == TabSignup {
		tab = TabSignup
	}
	p := h.page(w, r, LoginData{Tab: tab})
	h.dash.Render(w, http.StatusOK, p)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, data LoginData) ui.Page {
	p := h.dash.NewPage(w, r, session.Initial(), "Mekgoro")
	p.Data = data
	p.Form = map[string]string{}
	return p
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	code := strings.TrimSpace(r.PostFormValue("shop_code"))

	p := h.page(w, r, LoginData{Tab: TabLogin})
	p.Form["shop_code"] = code
	if code == "" {
		p.Notify(ui.Warning(MsgEnterCode))
		h.dash.Render(w, http.StatusUnprocessableEntity, p)
		return
	}

	sh, err := h.shops.Lookup(r.Context(), code)
	if err != nil {
		h.log.WithFields(logrus.Fields{"module": moduleName, "shop_id": code, "error": backend.Message(err)}).
			Info("login lookup failed")
		if backend.IsConnection(err) {
			p.Notify(ui.Error(msgConnectionInfo + backend.Detail(err)))
		}
		p.Notify(ui.Error(MsgShopNotFound))
		h.dash.Render(w, http.StatusOK, p)
		return
	}

	h.dash.SignIn(w, sh)
	http.Redirect(w, r, ui.Href(view.Daily), http.StatusSeeOther)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := shop.SignupRequest{
		Name:     r.PostFormValue("name"),
		Owner:    r.PostFormValue("owner"),
		Phone:    r.PostFormValue("phone"),
		Location: r.PostFormValue("location"),
	}

	code, err := h.shops.Signup(r.Context(), req)
	if err != nil {
		p := h.page(w, r, LoginData{Tab: TabSignup})
		p.Form = map[string]string{
			"name": req.Name, "owner": req.Owner, "phone": req.Phone, "location": req.Location,
		}
		if fields, ok := validation.AsErrors(err); ok {
			p.Fields = fields
			p.Notify(ui.Error(MsgFillRequired))
			h.dash.Render(w, http.StatusUnprocessableEntity, p)
			return
		}
		logger.LogError(h.log, moduleName, "signup", "creating trial shop", req.Name, err)
		p.Notify(ui.Error(failedToCreate(h.dash.Support())))
		h.dash.Render(w, http.StatusOK, p)
		return
	}

	created := []ui.Notice{ui.Success(msgCreatedPrefix + code), ui.Info(MsgCheckWhatsApp)}
	sh, err := h.shops.Lookup(r.Context(), code)
	if err != nil {
		logger.LogError(h.log, moduleName, "signup", "auto-login after signup", code, err)
		p := h.page(w, r, LoginData{Tab: TabLogin, NewCode: code})
		p.Form["shop_code"] = code
		p.Notify(created...)
		p.Notify(ui.Warning(MsgLoginWithCode))
		h.dash.Render(w, http.StatusOK, p)
		return
	}

	h.dash.SignIn(w, sh, created...)
	http.Redirect(w, r, ui.Href(view.Daily), http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.dash.SignOut(w)
	http.Redirect(w, r, ui.Href(view.Login), http.StatusSeeOther)
}

func failedToCreate(support string) string {
	return "Failed to create. WhatsApp " + support + " for help."
}

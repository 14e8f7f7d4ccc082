package auth

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard/dashboardtest"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

const shop123 = `{"shop_id":"SHOP123","name":"Thabo Spaza","location":"Soweto","plan":"growth","status":"trial","trial_ends":"2026-10-20"}`

func newHarness(t *testing.T) *dashboardtest.Harness {
	t.Helper()
	h := dashboardtest.New(t)
	shops := shop.NewService(shop.NewAPIRepository(h.Backend.NewClient()), validation.New())
	NewHandler(shops, h.Dash, h.Log).RegisterRoutes(h.Router)
	return h
}

func TestLoginScreen(t *testing.T) {
	h := newHarness(t)

	rec := h.Get("/login", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="shop_code"`)
	assert.NotContains(t, body, `action="/signup"`)

	rec = h.Get("/login?tab=signup", nil)
	assert.Contains(t, rec.Body.String(), `action="/signup"`)
}

func TestLoginKnownShop(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionGetShop, shop123)

	rec := h.PostForm("/login", url.Values{"shop_code": {" SHOP123 "}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/daily", rec.Header().Get("Location"))
	require.NotNil(t, dashboardtest.Cookie(rec, session.CookieName))

	page := h.Follow(rec, nil)
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Thabo Spaza")
	assert.Contains(t, body, "📍 Soweto | Code: SHOP123")
	assert.Contains(t, body, "Trial: 6d")
}

func TestLoginUnknownShop(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionGetShop, `{"error":"Shop not found"}`)

	rec := h.PostForm("/login", url.Values{"shop_code": {"UNKNOWN"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgShopNotFound)
	assert.Contains(t, rec.Body.String(), `value="UNKNOWN"`)
	assert.Nil(t, dashboardtest.Cookie(rec, session.CookieName))
}

func TestLoginConnectionFailure(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionGetShop, `<html>gateway down</html>`)

	rec := h.PostForm("/login", url.Values{"shop_code": {"SHOP123"}}, nil)
	body := rec.Body.String()
	assert.Contains(t, body, "Connection error: ")
	assert.Contains(t, body, MsgShopNotFound)
}

func TestLoginEmptyCode(t *testing.T) {
	h := newHarness(t)

	rec := h.PostForm("/login", url.Values{"shop_code": {"   "}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgEnterCode)
	assert.Empty(t, h.Backend.Calls())
}

func TestLoginWhileSignedInRedirects(t *testing.T) {
	h := newHarness(t)
	cookies := h.SignedIn(t, &shop.Shop{ID: "SHOP123", Name: "Thabo Spaza"}, view.Stock)

	rec := h.Get("/login", cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/stock", rec.Header().Get("Location"))
}

var signupForm = url.Values{
	"name":     {"Lerato Tuck Shop"},
	"owner":    {"Lerato"},
	"phone":    {"0821112222"},
	"location": {"Tembisa"},
}

func TestSignupCreatesAndSignsIn(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionAddShop, `{"success":true,"shop_id":"SHOP777"}`)
	h.Backend.On(backend.ActionGetShop, `{"shop_id":"SHOP777","name":"Lerato Tuck Shop","location":"Tembisa","status":"trial","trial_ends":"2026-10-28"}`)

	rec := h.PostForm("/signup", signupForm, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/daily", rec.Header().Get("Location"))

	body := h.Follow(rec, nil).Body.String()
	assert.Contains(t, body, "Created! Your code: SHOP777")
	assert.Contains(t, body, MsgCheckWhatsApp)
	assert.Contains(t, body, "Lerato Tuck Shop")

	calls := h.Backend.CallsFor(backend.ActionAddShop)
	require.Len(t, calls, 1)
	assert.Equal(t, "growth", calls[0].Body["plan"])
	assert.Equal(t, "spaza", calls[0].Body["type"])
	assert.Equal(t, "SHOP777", h.Backend.CallsFor(backend.ActionGetShop)[0].Params.Get("shop_id"))
}

func TestSignupMissingFields(t *testing.T) {
	h := newHarness(t)

	rec := h.PostForm("/signup", url.Values{"name": {"Lerato Tuck Shop"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, MsgFillRequired)
	assert.Contains(t, body, "WhatsApp number is required")
	assert.Contains(t, body, `value="Lerato Tuck Shop"`)
	assert.Empty(t, h.Backend.Calls())
}

func TestSignupRejected(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionAddShop, `{"error":"Phone already registered"}`)

	rec := h.PostForm("/signup", signupForm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to create. WhatsApp "+dashboardtest.Support+" for help.")
	assert.Nil(t, dashboardtest.Cookie(rec, session.CookieName))
}

func TestSignupAutoLoginFails(t *testing.T) {
	h := newHarness(t)
	h.Backend.On(backend.ActionAddShop, `{"success":true,"shop_id":"SHOP777"}`)

	rec := h.PostForm("/signup", signupForm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Created! Your code: SHOP777")
	assert.Contains(t, body, MsgLoginWithCode)
	assert.Contains(t, body, `value="SHOP777"`)
	assert.Nil(t, dashboardtest.Cookie(rec, session.CookieName))
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	cookies := h.SignedIn(t, &shop.Shop{ID: "SHOP123"}, view.Daily)

	rec := h.PostForm("/logout", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cleared := dashboardtest.Cookie(rec, session.CookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	after := h.Get("/app/daily", dashboardtest.Merge(cookies, rec.Result().Cookies()))
	assert.Equal(t, http.StatusSeeOther, after.Code)
	assert.Equal(t, "/login", after.Header().Get("Location"))
}

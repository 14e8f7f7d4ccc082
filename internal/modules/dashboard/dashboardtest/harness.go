// Package dashboardtest wires a dashboard against a fake shop API for
// handler tests.
package dashboardtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend/backendtest"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

// Support is the support number every harness dashboard shows.
const Support = "0712345678"

// Now is the fixed clock of every harness dashboard.
var Now = time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)

// Harness is a router with a dashboard whose screens all render an empty
// page until a module mounts its own.
type Harness struct {
	Router  *chi.Mux
	Dash    *dashboard.Dashboard
	Backend *backendtest.Server
	Store   *session.Store
	Log     *logrus.Logger
	Hook    *test.Hook
}

func New(t *testing.T) *Harness {
	t.Helper()
	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	logg, hook := test.NewNullLogger()
	store := session.NewStore("test-secret", time.Hour, false)
	dash := dashboard.New(store, renderer, logg, Support)
	dash.SetClock(func() time.Time { return Now })
	for _, id := range view.All() {
		dash.Mount(id, func(w http.ResponseWriter, r *http.Request, st session.State) {
			dash.Render(w, http.StatusOK, dash.NewPage(w, r, st, string(st.View)))
		})
	}

	router := chi.NewRouter()
	dash.RegisterRoutes(router)
	return &Harness{
		Router:  router,
		Dash:    dash,
		Backend: backendtest.New(t),
		Store:   store,
		Log:     logg,
		Hook:    hook,
	}
}

// SignedIn returns session cookies for sh on screen id.
func (h *Harness) SignedIn(t *testing.T, sh *shop.Shop, id view.ID) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Store.Save(rec, session.Initial().Login(sh).Navigate(id)))
	return rec.Result().Cookies()
}

// Get issues a GET with cookies.
func (h *Harness) Get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return h.serve(req, cookies)
}

// PostForm issues a form POST with cookies.
func (h *Harness) PostForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.serve(req, cookies)
}

// Follow replays rec's redirect as a GET, carrying the cookies it set.
func (h *Harness) Follow(rec *httptest.ResponseRecorder, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return h.Get(rec.Header().Get("Location"), Merge(cookies, rec.Result().Cookies()))
}

func (h *Harness) serve(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.Router.ServeHTTP(rec, req)
	return rec
}

// Merge overlays later cookies on earlier ones by name, dropping deleted ones.
func Merge(base, later []*http.Cookie) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	var order []string
	for _, set := range [][]*http.Cookie{base, later} {
		for _, c := range set {
			if _, ok := byName[c.Name]; !ok {
				order = append(order, c.Name)
			}
			byName[c.Name] = c
		}
	}
	var out []*http.Cookie
	for _, name := range order {
		if c := byName[name]; c.MaxAge >= 0 {
			out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return out
}

// Cookie finds the cookie called name set on rec.
func Cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Package dashboard routes GET requests to the screen each session is on and
// gives the module handlers their shared page plumbing.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
)

const moduleName = "dashboard"

// ViewFunc renders one screen for st.
type ViewFunc func(w http.ResponseWriter, r *http.Request, st session.State)

type ctxKey struct{}

// Dashboard owns the screen table and the session cookie.
type Dashboard struct {
	store    *session.Store
	renderer *ui.Renderer
	log      logrus.FieldLogger
	support  string
	now      func() time.Time
	views    map[view.ID]ViewFunc
}

func New(store *session.Store, renderer *ui.Renderer, log logrus.FieldLogger, support string) *Dashboard {
	return &Dashboard{
		store:    store,
		renderer: renderer,
		log:      log,
		support:  support,
		now:      time.Now,
		views:    make(map[view.ID]ViewFunc),
	}
}

// SetClock replaces the wall clock.
func (d *Dashboard) SetClock(now func() time.Time) { d.now = now }

// Now is the dashboard's current time.
func (d *Dashboard) Now() time.Time { return d.now() }

// Support is the WhatsApp number shown for manual help.
func (d *Dashboard) Support() string { return d.support }

// Mount binds fn to id. Mounting twice replaces the earlier handler.
func (d *Dashboard) Mount(id view.ID, fn ViewFunc) { d.views[id] = fn }

// Validate fails unless every screen has a handler.
func (d *Dashboard) Validate() error {
	var missing []string
	for _, id := range view.All() {
		if d.views[id] == nil {
			missing = append(missing, string(id))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("dashboard: no handler mounted for %s", strings.Join(missing, ", "))
	}
	return nil
}

func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.home)
	r.Get("/login", d.login)
	r.Get("/app", d.jump)
	r.Get("/app/{view}", d.app)
}

// ── Screens ───────────────────────────────────────────────────────────────────

func (d *Dashboard) home(w http.ResponseWriter, r *http.Request) {
	st := d.store.Load(r)
	http.Redirect(w, r, ui.Href(st.View), http.StatusSeeOther)
}

func (d *Dashboard) login(w http.ResponseWriter, r *http.Request) {
	st := d.store.Load(r)
	if st.Authenticated() {
		http.Redirect(w, r, ui.Href(st.View), http.StatusSeeOther)
		return
	}
	d.views[view.Login](w, r, st)
}

func (d *Dashboard) app(w http.ResponseWriter, r *http.Request) {
	st := d.store.Load(r).Navigate(view.ID(chi.URLParam(r, "view")))
	if !st.Authenticated() {
		http.Redirect(w, r, ui.Href(view.Login), http.StatusSeeOther)
		return
	}
	if err := d.store.Save(w, st); err != nil {
		logger.LogError(d.log, moduleName, "app", "saving session", st.View, err)
	}
	d.views[st.View](w, r, st)
}

// jump serves the menu picker shown when scripts are off; it carries the
// chosen menu label rather than an id.
func (d *Dashboard) jump(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, ui.Href(view.ParseLabel(r.URL.Query().Get("screen"))), http.StatusSeeOther)
}

// ── Session helpers ───────────────────────────────────────────────────────────

// RequireShop lets only signed-in sessions through; the State is available
// to next through StateFrom.
func (d *Dashboard) RequireShop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := d.store.Load(r)
		if !st.Authenticated() {
			http.Redirect(w, r, ui.Href(view.Login), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

// StateFrom returns the State stored by RequireShop.
func StateFrom(ctx context.Context) session.State {
	if st, ok := ctx.Value(ctxKey{}).(session.State); ok {
		return st
	}
	return session.Initial()
}

// SignIn stores the signed-in session and queues notices for the next page.
func (d *Dashboard) SignIn(w http.ResponseWriter, sh *shop.Shop, notices ...ui.Notice) session.State {
	st := session.Initial().Login(sh)
	if err := d.store.Save(w, st); err != nil {
		logger.LogError(d.log, moduleName, "SignIn", "saving session", sh.ID, err)
	}
	d.Flash(w, notices...)
	return st
}

// SignOut clears the session.
func (d *Dashboard) SignOut(w http.ResponseWriter) {
	d.store.Clear(w)
}

// Flash queues notices for the next rendered page.
func (d *Dashboard) Flash(w http.ResponseWriter, notices ...ui.Notice) {
	if err := d.store.AddFlash(w, notices...); err != nil {
		logger.LogError(d.log, moduleName, "Flash", "saving flash", nil, err)
	}
}

// Redirect flashes notices and sends the browser to id.
func (d *Dashboard) Redirect(w http.ResponseWriter, r *http.Request, id view.ID, notices ...ui.Notice) {
	d.Flash(w, notices...)
	http.Redirect(w, r, ui.Href(id), http.StatusSeeOther)
}

// ── Rendering ─────────────────────────────────────────────────────────────────

// NewPage starts a page for st with the banner, menu and pending flash notices.
// An empty title falls back to the screen's menu label.
func (d *Dashboard) NewPage(w http.ResponseWriter, r *http.Request, st session.State, title string) ui.Page {
	if title == "" {
		title = view.LabelOf(st.View)
	}
	now := d.now()
	p := ui.Page{
		Title:   title,
		View:    st.View,
		Support: d.support,
		Today:   now,
		Notices: d.store.TakeFlash(w, r),
	}
	if st.Authenticated() {
		p.Header = ui.NewHeader(st.Shop, now)
		p.Menu = ui.Menu(st.View)
		if st.Shop.IsTrial() && strings.TrimSpace(st.Shop.TrialEnds) != "" && !p.Header.ShowTrial {
			d.log.WithFields(logrus.Fields{"shop_id": st.Shop.ID, "trial_ends": st.Shop.TrialEnds}).
				Warn("unparseable trial end date, hiding countdown")
		}
	}
	return p
}

// Render writes p, logging template failures.
func (d *Dashboard) Render(w http.ResponseWriter, status int, p ui.Page) {
	if err := d.renderer.Render(w, status, p); err != nil {
		logger.LogError(d.log, moduleName, "Render", "rendering page", p.View, err)
		http.Error(w, "Something went wrong. Please reload the page.", http.StatusInternalServerError)
	}
}

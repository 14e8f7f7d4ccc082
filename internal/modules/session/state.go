// Package session holds the per-browser state of the dashboard: which shop
// is signed in and which screen is active.
package session

import (
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
)

// State is the whole of the session. It is a value; transitions return a new
// State and never mutate the receiver.
type State struct {
	Shop *shop.Shop
	View view.ID
}

// Initial is the signed-out state.
func Initial() State {
	return State{View: view.Login}
}

// Authenticated reports whether a shop is signed in.
func (s State) Authenticated() bool { return s.Shop != nil }

// Login signs sh in and lands on daily entry.
func (s State) Login(sh *shop.Shop) State {
	if sh == nil {
		return Initial()
	}
	return State{Shop: sh, View: view.Daily}
}

// Logout drops the shop and returns to the login screen.
func (s State) Logout() State { return Initial() }

// Navigate switches to id, resolved against the current authentication.
func (s State) Navigate(id view.ID) State {
	return State{Shop: s.Shop, View: view.Resolve(s.Authenticated(), id)}
}

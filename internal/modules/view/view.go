// Package view enumerates the screens of the dashboard and decides which one
// a request lands on.
package view

import "strings"

// ID identifies a screen.
type ID string

const (
	Login   ID = "login"
	Daily   ID = "daily"
	Weekly  ID = "weekly"
	Stock   ID = "stock"
	Credit  ID = "credit"
	Account ID = "account"
	Help    ID = "help"
)

// Entry is one menu item.
type Entry struct {
	ID    ID
	Icon  string
	Label string
}

// Menu lists the dashboard screens in display order.
var Menu = []Entry{
	{Daily, "📊", "Today's Entry"},
	{Weekly, "📈", "This Week"},
	{Stock, "📦", "Stock"},
	{Credit, "👥", "Credit"},
	{Account, "💳", "Account"},
	{Help, "❓", "Help"},
}

// All returns every ID, login first.
func All() []ID {
	ids := []ID{Login}
	for _, e := range Menu {
		ids = append(ids, e.ID)
	}
	return ids
}

// IsDashboard reports whether id is one of the menu screens.
func IsDashboard(id ID) bool {
	for _, e := range Menu {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Resolve picks the screen to show. Unauthenticated users always get the
// login screen; an authenticated request for anything that is not a menu
// screen falls back to help.
func Resolve(authenticated bool, id ID) ID {
	if !authenticated {
		return Login
	}
	if IsDashboard(id) {
		return id
	}
	return Help
}

// ParseLabel maps a menu label, with or without its icon, to its ID.
// Unmatched labels map to help.
func ParseLabel(label string) ID {
	label = strings.TrimSpace(label)
	for _, e := range Menu {
		if label == e.Label || label == e.Icon+" "+e.Label {
			return e.ID
		}
	}
	return Help
}

// LabelOf returns the menu label of id, empty for non-menu screens.
func LabelOf(id ID) string {
	for _, e := range Menu {
		if e.ID == id {
			return e.Label
		}
	}
	return ""
}

package help

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard/dashboardtest"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
)

func TestHelpScreen(t *testing.T) {
	h := dashboardtest.New(t)
	NewHandler(h.Dash, "ZA").RegisterRoutes(h.Router)

	rec := h.Get("/app/help", h.SignedIn(t, &shop.Shop{ID: "SHOP123", Name: "Thabo Spaza"}, view.Help))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "How Mekgoro Works")
	assert.Contains(t, body, `<a href="https://wa.me/27712345678">`+dashboardtest.Support+`</a>`)
}

func TestHelpWithoutLink(t *testing.T) {
	h := dashboardtest.New(t)
	handler := NewHandler(h.Dash, "ZZ")
	assert.Empty(t, handler.data.SupportLink)
	assert.Equal(t, dashboardtest.Support, handler.data.Support)
}

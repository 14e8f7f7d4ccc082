package credit

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard/dashboardtest"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

var testShop = &shop.Shop{ID: "SHOP123", Name: "Thabo Spaza", Location: "Soweto", Status: shop.StatusActive}

func newHarness(t *testing.T) (*dashboardtest.Harness, Service) {
	t.Helper()
	h := dashboardtest.New(t)
	svc := NewService(NewFixtureSource(), NewWhatsAppNotifier("ZA"), validation.New(), h.Log)
	NewHandler(svc, h.Dash, h.Log).RegisterRoutes(h.Router)
	return h, svc
}

func TestCreditScreen(t *testing.T) {
	h, _ := newHarness(t)

	rec := h.Get("/app/credit", h.SignedIn(t, testShop, view.Credit))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "R430")
	assert.Contains(t, body, "3 customers")
	assert.Contains(t, body, "John Dlamini - R150")
	assert.Contains(t, body, "Since: 15 Feb")
}

func TestCreditAddTab(t *testing.T) {
	h, _ := newHarness(t)

	rec := h.Get("/app/credit?tab=add", h.SignedIn(t, testShop, view.Credit))
	body := rec.Body.String()
	assert.Contains(t, body, `action="/app/credit/customers"`)
	assert.Contains(t, body, `value="500"`)
	assert.NotContains(t, body, "John Dlamini")
}

func TestCreditAddCustomer(t *testing.T) {
	h, _ := newHarness(t)
	cookies := h.SignedIn(t, testShop, view.Credit)

	rec := h.PostForm("/app/credit/customers", url.Values{"name": {"Lerato"}, "phone": {"0821112222"}, "limit": {"500"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, h.Follow(rec, cookies).Body.String(), "Added Lerato with R500 limit")
}

func TestCreditAddLimitTooLow(t *testing.T) {
	h, _ := newHarness(t)

	rec := h.PostForm("/app/credit/customers", url.Values{"name": {"Lerato"}, "limit": {"10"}}, h.SignedIn(t, testShop, view.Credit))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Credit limit must be at least R50")
	assert.Contains(t, body, `value="Lerato"`)
}

func TestCreditRemind(t *testing.T) {
	h, svc := newHarness(t)
	cookies := h.SignedIn(t, testShop, view.Credit)

	rec := h.PostForm("/app/credit/customers/"+customerID(t, svc, "Mary Ndlovu")+"/remind", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	body := h.Follow(rec, cookies).Body.String()
	assert.Contains(t, body, "WhatsApp reminder sent to Mary Ndlovu!")
	assert.Contains(t, body, "https://wa.me/27734567890?text=")
}

func TestCreditRecordPayment(t *testing.T) {
	h, svc := newHarness(t)
	cookies := h.SignedIn(t, testShop, view.Credit)

	rec := h.PostForm("/app/credit/customers/"+customerID(t, svc, "Themba")+"/payments", url.Values{"amount": {"50"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	body := h.Follow(rec, cookies).Body.String()
	assert.Contains(t, body, "Recorded R50 payment!")
	assert.Contains(t, body, "Themba now owes R150")
}

func TestCreditPaymentTooLarge(t *testing.T) {
	h, svc := newHarness(t)
	cookies := h.SignedIn(t, testShop, view.Credit)

	rec := h.PostForm("/app/credit/customers/"+customerID(t, svc, "Mary Ndlovu")+"/payments", url.Values{"amount": {"81"}}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, h.Follow(rec, cookies).Body.String(), MsgPaymentRange)
}

func TestCreditUnknownCustomer(t *testing.T) {
	h, _ := newHarness(t)
	cookies := h.SignedIn(t, testShop, view.Credit)

	rec := h.PostForm("/app/credit/customers/ghost/remind", nil, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, h.Follow(rec, cookies).Body.String(), MsgUnknownCustomer)
}

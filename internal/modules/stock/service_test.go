package stock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend/backendtest"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

func TestFixtureList(t *testing.T) {
	svc := NewService(NewFixtureSource(), validation.New())

	products, err := svc.List(context.Background(), "SHOP123")
	require.NoError(t, err)
	require.Len(t, products, 4)

	low := map[string]bool{}
	for _, p := range products {
		low[p.Name] = p.Low()
	}
	assert.Equal(t, map[string]bool{
		"White Bread": true,
		"Brown Bread": false,
		"Milk 1L":     true,
		"Cold Drinks": false,
	}, low)

	again, err := svc.List(context.Background(), "OTHER")
	require.NoError(t, err)
	assert.Equal(t, products[0].ID, again[0].ID)
}

func TestLowAtThreshold(t *testing.T) {
	assert.False(t, Product{Stock: 5, Threshold: 5}.Low())
	assert.True(t, Product{Stock: 4, Threshold: 5}.Low())
}

func TestLowFollowsAPIStatus(t *testing.T) {
	assert.True(t, Product{Stock: 40, Threshold: 5, Status: "LOW"}.Low())
	assert.True(t, Product{Stock: 2, Threshold: 5, Status: "ok"}.Low())
	assert.False(t, Product{Stock: 40, Threshold: 5, Status: "ok"}.Low())
}

func TestAddValidates(t *testing.T) {
	svc := NewService(NewFixtureSource(), validation.New())

	_, err := svc.Add(context.Background(), "SHOP123", NewProduct{Name: "   ", Threshold: 0, Stock: -1})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Product name is required", errs["name"])
	assert.Equal(t, "Alert level must be at least 1", errs["min"])
	assert.Equal(t, "Stock can't be negative", errs["stock"])
}

func TestAddFixture(t *testing.T) {
	svc := NewService(NewFixtureSource(), validation.New())

	p, err := svc.Add(context.Background(), "SHOP123", NewProduct{Name: " Sugar 2kg ", Stock: 10, Threshold: 3})
	require.NoError(t, err)
	assert.Equal(t, "Sugar 2kg", p.Name)
	assert.NotEmpty(t, p.ID)

	products, _ := svc.List(context.Background(), "SHOP123")
	assert.Len(t, products, 4)
}

func TestOrderUnknownProduct(t *testing.T) {
	svc := NewService(NewFixtureSource(), validation.New())

	_, err := svc.Order(context.Background(), "SHOP123", "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderRefusesStockedProduct(t *testing.T) {
	svc := NewService(NewFixtureSource(), validation.New())

	_, err := svc.Order(context.Background(), "SHOP123", fixtureID("Brown Bread"))
	assert.ErrorIs(t, err, ErrNotLow)
}

func TestAPISourceStatus(t *testing.T) {
	fake := backendtest.New(t)
	fake.On(backend.ActionGetStock, `[{"id":"p1","name":"Paraffin","stock":20,"min":5,"status":"low"},{"id":"p2","name":"Salt","stock":9,"min":2}]`)
	fake.On(backend.ActionReorderProduct, `{"success":true}`)
	svc := NewService(NewAPISource(fake.NewClient()), validation.New())

	products, err := svc.List(context.Background(), "SHOP123")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "low", products[0].Status)
	assert.True(t, products[0].Low())
	assert.False(t, products[1].Low())

	_, err = svc.Order(context.Background(), "SHOP123", "p1")
	require.NoError(t, err)
	_, err = svc.Order(context.Background(), "SHOP123", "p2")
	assert.ErrorIs(t, err, ErrNotLow)
	assert.Len(t, fake.CallsFor(backend.ActionReorderProduct), 1)
}

func TestAPISource(t *testing.T) {
	fake := backendtest.New(t)
	svc := NewService(NewAPISource(fake.NewClient()), validation.New())
	fake.On(backend.ActionGetStock, `{"products":[{"id":"p1","name":"Maize Meal","stock":1,"min":3}]}`)
	fake.On(backend.ActionAddProduct, `{"success":true,"product_id":"p2"}`)
	fake.On(backend.ActionReorderProduct, `{"success":true}`)

	products, err := svc.List(context.Background(), "SHOP123")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Low())
	assert.Equal(t, "SHOP123", fake.CallsFor(backend.ActionGetStock)[0].Params.Get("shop_id"))

	added, err := svc.Add(context.Background(), "SHOP123", NewProduct{
		Name:      "Rice",
		BuyPrice:  decimal.RequireFromString("20.50"),
		SellPrice: decimal.RequireFromString("25"),
		Stock:     6,
		Threshold: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "p2", added.ID)
	body := fake.CallsFor(backend.ActionAddProduct)[0].Body
	assert.EqualValues(t, 20.5, body["buy_price"])
	assert.EqualValues(t, 2, body["min"])

	ordered, err := svc.Order(context.Background(), "SHOP123", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Maize Meal", ordered.Name)
	assert.Equal(t, "p1", fake.CallsFor(backend.ActionReorderProduct)[0].Body["product_id"])
}

func TestAPISourceBareList(t *testing.T) {
	fake := backendtest.New(t)
	fake.On(backend.ActionGetStock, `[{"id":"p1","name":"Eggs","stock":30,"min":12}]`)

	products, err := NewAPISource(fake.NewClient()).List(context.Background(), "SHOP123")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.False(t, products[0].Low())
}

func TestAPISourceFailure(t *testing.T) {
	fake := backendtest.New(t)
	fake.On(backend.ActionGetStock, `{"error":"Stock service offline"}`)

	_, err := NewService(NewAPISource(fake.NewClient()), validation.New()).List(context.Background(), "SHOP123")
	require.Error(t, err)
	assert.Equal(t, "Stock service offline", backend.Message(err))
}

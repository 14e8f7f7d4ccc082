package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

var (
	// ErrProductNotFound is returned when an order names an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrNotLow is returned when an order names a product that is still stocked.
	ErrNotLow = errors.New("product is not low on stock")
)

// Source supplies and updates a shop's stock list.
type Source interface {
	List(ctx context.Context, shopID string) ([]Product, error)
	Add(ctx context.Context, shopID string, p NewProduct) (*Product, error)
	Reorder(ctx context.Context, shopID string, p Product) error
}

// ── Fixture source ────────────────────────────────────────────────────────────
// Illustrative stock shown until the shop API serves real lists. Adds and
// orders are acknowledged and forgotten.

var fixtureNamespace = uuid.MustParse("5b1e7a52-3d0c-4f3e-9b0a-6f1c2d7e8a90")

type fixtureSource struct{ products []Product }

func NewFixtureSource() Source {
	seed := []struct {
		name       string
		stock, min int
	}{
		{"White Bread", 3, 5},
		{"Brown Bread", 12, 5},
		{"Milk 1L", 2, 4},
		{"Cold Drinks", 24, 12},
	}
	products := make([]Product, 0, len(seed))
	for _, s := range seed {
		products = append(products, Product{
			ID:        fixtureID(s.name),
			Name:      s.name,
			Stock:     s.stock,
			Threshold: s.min,
		})
	}
	return &fixtureSource{products: products}
}

func fixtureID(name string) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(name)).String()
}

func (s *fixtureSource) List(ctx context.Context, shopID string) ([]Product, error) {
	return append([]Product(nil), s.products...), nil
}

func (s *fixtureSource) Add(ctx context.Context, shopID string, p NewProduct) (*Product, error) {
	added := p.Product(uuid.NewString())
	return &added, nil
}

func (s *fixtureSource) Reorder(ctx context.Context, shopID string, p Product) error {
	return nil
}

// ── Shop API source ───────────────────────────────────────────────────────────

type apiSource struct{ client *backend.Client }

// NewAPISource returns a Source backed by the get_stock, add_product and
// reorder_product actions.
func NewAPISource(client *backend.Client) Source {
	return &apiSource{client: client}
}

func (s *apiSource) List(ctx context.Context, shopID string) ([]Product, error) {
	raw, err := s.client.Get(ctx, backend.ActionGetStock, map[string]string{"shop_id": shopID})
	if err != nil {
		return nil, err
	}
	var products []Product
	if bytes.HasPrefix(raw, []byte("[")) {
		err = json.Unmarshal(raw, &products)
	} else {
		var wrapped struct {
			Products []Product `json:"products"`
		}
		err = json.Unmarshal(raw, &wrapped)
		products = wrapped.Products
	}
	if err != nil {
		return nil, &backend.Error{Kind: backend.KindBackend, Action: backend.ActionGetStock, Message: "unexpected response from server", Detail: err.Error()}
	}
	return products, nil
}

func (s *apiSource) Add(ctx context.Context, shopID string, p NewProduct) (*Product, error) {
	var resp struct {
		ProductID string `json:"product_id"`
	}
	err := s.client.PostJSON(ctx, backend.ActionAddProduct, map[string]any{
		"shop_id":    shopID,
		"name":       p.Name,
		"buy_price":  json.Number(p.BuyPrice.String()),
		"sell_price": json.Number(p.SellPrice.String()),
		"stock":      p.Stock,
		"min":        p.Threshold,
	}, &resp)
	if err != nil {
		return nil, err
	}
	added := p.Product(resp.ProductID)
	return &added, nil
}

func (s *apiSource) Reorder(ctx context.Context, shopID string, p Product) error {
	_, err := s.client.Post(ctx, backend.ActionReorderProduct, map[string]any{
		"shop_id":    shopID,
		"product_id": p.ID,
		"name":       p.Name,
	})
	return err
}

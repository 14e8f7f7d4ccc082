package stock

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the low-stock alert level offered on the add form.
const DefaultThreshold = 5

// Product is a stocked item of a shop.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Stock     int             `json:"stock"`
	Threshold int             `json:"min"`
	// Status is the shop API's own verdict, when it sends one.
	Status string `json:"status,omitempty"`
}

// StatusLow is the shop API's marker for an item that needs restocking.
const StatusLow = "low"

// Low reports whether the item needs restocking: the API's low status wins,
// otherwise stock has dropped below the alert level.
func (p Product) Low() bool {
	if strings.EqualFold(strings.TrimSpace(p.Status), StatusLow) {
		return true
	}
	return p.Stock < p.Threshold
}

// NewProduct is the add product form.
type NewProduct struct {
	Name      string          `form:"name" validate:"required" msg:"Product name is required"`
	BuyPrice  decimal.Decimal `form:"buy_price" validate:"gte=0" msg:"Buy price can't be negative"`
	SellPrice decimal.Decimal `form:"sell_price" validate:"gte=0" msg:"Sell price can't be negative"`
	Stock     int             `form:"stock" validate:"gte=0" msg:"Stock can't be negative"`
	Threshold int             `form:"min" validate:"gte=1" msg:"Alert level must be at least 1"`
}

func (n *NewProduct) trim() { n.Name = strings.TrimSpace(n.Name) }

// Product builds the listed product for n.
func (n NewProduct) Product(id string) Product {
	return Product{
		ID:        id,
		Name:      n.Name,
		BuyPrice:  n.BuyPrice,
		SellPrice: n.SellPrice,
		Stock:     n.Stock,
		Threshold: n.Threshold,
	}
}

package credit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// DefaultLimit is the credit limit offered on the add form.
var DefaultLimit = decimal.NewFromInt(500)

// Customer is someone who buys on credit.
type Customer struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Phone string          `json:"phone"`
	Owed  decimal.Decimal `json:"owed"`
	Limit decimal.Decimal `json:"credit_limit"`
	Since backend.Date    `json:"since"`
}

// Ledger is every customer with an outstanding balance.
type Ledger struct {
	Customers []Customer
	Total     decimal.Decimal
}

// Count is the number of customers on the ledger.
func (l Ledger) Count() int { return len(l.Customers) }

// NewLedger sums what customers owe.
func NewLedger(customers []Customer) Ledger {
	total := decimal.Zero
	for _, c := range customers {
		total = total.Add(c.Owed)
	}
	return Ledger{Customers: customers, Total: total}
}

// NewCustomer is the add customer form.
type NewCustomer struct {
	Name  string          `form:"name" validate:"required" msg:"Customer name is required"`
	Phone string          `form:"phone"`
	Limit decimal.Decimal `form:"limit" validate:"gte=50" msg:"Credit limit must be at least R50"`
}

func (n *NewCustomer) trim() {
	n.Name = strings.TrimSpace(n.Name)
	n.Phone = strings.TrimSpace(n.Phone)
}

// Payment is the outcome of recording money received from a customer.
type Payment struct {
	Customer Customer
	Amount   decimal.Decimal
}

// Reminder is a sent payment reminder. Link opens a prepared WhatsApp chat
// and is empty when the phone number could not be understood.
type Reminder struct {
	Customer Customer
	Link     string
}

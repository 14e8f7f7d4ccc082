package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// Source supplies and updates a shop's credit customers.
type Source interface {
	List(ctx context.Context, shopID string) ([]Customer, error)
	Add(ctx context.Context, shopID string, c NewCustomer) (*Customer, error)
	RecordPayment(ctx context.Context, shopID string, c Customer, amount decimal.Decimal) (*Customer, error)
	Remind(ctx context.Context, shopID string, c Customer) error
}

// ── Fixture source ────────────────────────────────────────────────────────────
// Illustrative customers shown until the shop API serves real ledgers.
// Nothing written here is kept.

var fixtureNamespace = uuid.MustParse("0c6f43d8-8a1b-4d59-a7e2-2f4b6c9d1e35")

type fixtureSource struct{ customers []Customer }

func NewFixtureSource() Source {
	seed := []struct {
		name, phone string
		owed        int64
		day         int
	}{
		{"John Dlamini", "0823456789", 150, 15},
		{"Mary Ndlovu", "0734567890", 80, 18},
		{"Themba", "0812345678", 200, 10},
	}
	customers := make([]Customer, 0, len(seed))
	for _, s := range seed {
		customers = append(customers, Customer{
			ID:    uuid.NewSHA1(fixtureNamespace, []byte(s.name)).String(),
			Name:  s.name,
			Phone: s.phone,
			Owed:  decimal.NewFromInt(s.owed),
			Limit: DefaultLimit,
			Since: backend.Date{Time: time.Date(2026, time.February, s.day, 0, 0, 0, 0, time.Local)},
		})
	}
	return &fixtureSource{customers: customers}
}

func (s *fixtureSource) List(ctx context.Context, shopID string) ([]Customer, error) {
	return append([]Customer(nil), s.customers...), nil
}

func (s *fixtureSource) Add(ctx context.Context, shopID string, c NewCustomer) (*Customer, error) {
	return &Customer{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Phone: c.Phone,
		Owed:  decimal.Zero,
		Limit: c.Limit,
		Since: backend.Date{Time: time.Now()},
	}, nil
}

func (s *fixtureSource) RecordPayment(ctx context.Context, shopID string, c Customer, amount decimal.Decimal) (*Customer, error) {
	c.Owed = c.Owed.Sub(amount)
	return &c, nil
}

func (s *fixtureSource) Remind(ctx context.Context, shopID string, c Customer) error {
	return nil
}

// ── Shop API source ───────────────────────────────────────────────────────────

type apiSource struct{ client *backend.Client }

// NewAPISource returns a Source backed by the credit actions of the shop API.
func NewAPISource(client *backend.Client) Source {
	return &apiSource{client: client}
}

func (s *apiSource) List(ctx context.Context, shopID string) ([]Customer, error) {
	raw, err := s.client.Get(ctx, backend.ActionGetCredit, map[string]string{"shop_id": shopID})
	if err != nil {
		return nil, err
	}
	var customers []Customer
	if bytes.HasPrefix(raw, []byte("[")) {
		err = json.Unmarshal(raw, &customers)
	} else {
		var wrapped struct {
			Customers []Customer `json:"customers"`
		}
		err = json.Unmarshal(raw, &wrapped)
		customers = wrapped.Customers
	}
	if err != nil {
		return nil, &backend.Error{Kind: backend.KindBackend, Action: backend.ActionGetCredit, Message: "unexpected response from server", Detail: err.Error()}
	}
	return customers, nil
}

func (s *apiSource) Add(ctx context.Context, shopID string, c NewCustomer) (*Customer, error) {
	var resp struct {
		CustomerID string `json:"customer_id"`
	}
	err := s.client.PostJSON(ctx, backend.ActionAddCreditCustomer, map[string]any{
		"shop_id":      shopID,
		"name":         c.Name,
		"phone":        c.Phone,
		"credit_limit": json.Number(c.Limit.String()),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Customer{ID: resp.CustomerID, Name: c.Name, Phone: c.Phone, Limit: c.Limit}, nil
}

func (s *apiSource) RecordPayment(ctx context.Context, shopID string, c Customer, amount decimal.Decimal) (*Customer, error) {
	var resp struct {
		Owed decimal.NullDecimal `json:"owed"`
	}
	err := s.client.PostJSON(ctx, backend.ActionRecordCreditPayment, map[string]any{
		"shop_id":     shopID,
		"customer_id": c.ID,
		"amount":      json.Number(amount.String()),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Owed.Valid {
		c.Owed = resp.Owed.Decimal
	} else {
		c.Owed = c.Owed.Sub(amount)
	}
	return &c, nil
}

func (s *apiSource) Remind(ctx context.Context, shopID string, c Customer) error {
	_, err := s.client.Post(ctx, backend.ActionSendCreditReminder, map[string]any{
		"shop_id":     shopID,
		"customer_id": c.ID,
	})
	return err
}

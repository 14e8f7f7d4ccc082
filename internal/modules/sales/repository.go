package sales

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// Repository reads and records daily figures.
type Repository interface {
	History(ctx context.Context, shopID string, days int) ([]Record, error)
	Record(ctx context.Context, shopID string, e Entry) (*Receipt, error)
}

type apiRepository struct{ client *backend.Client }

// NewAPIRepository returns a Repository backed by the shop API.
func NewAPIRepository(client *backend.Client) Repository {
	return &apiRepository{client: client}
}

func (r *apiRepository) History(ctx context.Context, shopID string, days int) ([]Record, error) {
	raw, err := r.client.Get(ctx, backend.ActionGetSales, map[string]string{
		"shop_id": shopID,
		"days":    strconv.Itoa(days),
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// decodeRecords accepts either a bare list or an object wrapping it under
// "sales".
func decodeRecords(raw json.RawMessage) ([]Record, error) {
	var records []Record
	if bytes.HasPrefix(raw, []byte("[")) {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, unexpected(err)
		}
		return records, nil
	}
	var wrapped struct {
		Sales *[]Record `json:"sales"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, unexpected(err)
	}
	if wrapped.Sales == nil {
		return nil, nil
	}
	return *wrapped.Sales, nil
}

func unexpected(err error) error {
	return &backend.Error{
		Kind:    backend.KindBackend,
		Action:  backend.ActionGetSales,
		Message: "unexpected response from server",
		Detail:  err.Error(),
	}
}

func (r *apiRepository) Record(ctx context.Context, shopID string, e Entry) (*Receipt, error) {
	var rec Receipt
	err := r.client.PostJSON(ctx, backend.ActionDailyEntry, map[string]any{
		"shop_id":  shopID,
		"revenue":  json.Number(e.Revenue.String()),
		"expenses": json.Number(e.Expenses.String()),
		"notes":    e.Notes,
		"details": Details{
			Bread:   e.Bread,
			Drinks:  e.Drinks,
			Airtime: e.Airtime,
		},
	}, &rec)
	if err != nil {
		return nil, err
	}
	if !rec.Success {
		return nil, &backend.Error{Kind: backend.KindBackend, Action: backend.ActionDailyEntry, Message: "Unknown error"}
	}
	return &rec, nil
}

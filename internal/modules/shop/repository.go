package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// ErrNoShopCode is returned by the API when add_shop succeeds without a code.
var ErrNoShopCode = errors.New("shop api returned no shop code")

// Repository reads and creates shops.
type Repository interface {
	GetByCode(ctx context.Context, code string) (*Shop, error)
	Create(ctx context.Context, req SignupRequest) (string, error)
}

type apiRepository struct{ client *backend.Client }

// NewAPIRepository returns a Repository backed by the shop API.
func NewAPIRepository(client *backend.Client) Repository {
	return &apiRepository{client: client}
}

func (r *apiRepository) GetByCode(ctx context.Context, code string) (*Shop, error) {
	var s Shop
	if err := r.client.GetJSON(ctx, backend.ActionGetShop, map[string]string{"shop_id": code}, &s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = code
	}
	return &s, nil
}

type createResponse struct {
	Success bool   `json:"success"`
	ShopID  string `json:"shop_id"`
}

func (r *apiRepository) Create(ctx context.Context, req SignupRequest) (string, error) {
	var resp createResponse
	err := r.client.PostJSON(ctx, backend.ActionAddShop, map[string]any{
		"name":     req.Name,
		"owner":    req.Owner,
		"phone":    req.Phone,
		"location": req.Location,
		"plan":     string(SignupPlan),
		"type":     SignupType,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &backend.Error{Kind: backend.KindBackend, Action: backend.ActionAddShop, Message: "Unknown error"}
	}
	code := strings.TrimSpace(resp.ShopID)
	if code == "" {
		return "", ErrNoShopCode
	}
	return code, nil
}

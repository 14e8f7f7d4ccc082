package stock

import (
	"context"
	"fmt"

	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

// Service defines stock listing, adding and ordering.
type Service interface {
	List(ctx context.Context, shopID string) ([]Product, error)
	Add(ctx context.Context, shopID string, p NewProduct) (*Product, error)
	// Order places a restock order for a listed product that is low.
	Order(ctx context.Context, shopID, productID string) (*Product, error)
}

type service struct {
	source   Source
	validate *validation.Validator
}

func NewService(source Source, v *validation.Validator) Service {
	return &service{source: source, validate: v}
}

func (s *service) List(ctx context.Context, shopID string) ([]Product, error) {
	products, err := s.source.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return products, nil
}

func (s *service) Add(ctx context.Context, shopID string, p NewProduct) (*Product, error) {
	p.trim()
	if err := s.validate.Check(p); err != nil {
		return nil, err
	}
	added, err := s.source.Add(ctx, shopID, p)
	if err != nil {
		return nil, fmt.Errorf("add product %s: %w", p.Name, err)
	}
	return added, nil
}

func (s *service) Order(ctx context.Context, shopID, productID string) (*Product, error) {
	products, err := s.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID != productID {
			continue
		}
		if !p.Low() {
			return nil, ErrNotLow
		}
		if err := s.source.Reorder(ctx, shopID, p); err != nil {
			return nil, fmt.Errorf("order %s: %w", p.Name, err)
		}
		return &p, nil
	}
	return nil, ErrProductNotFound
}

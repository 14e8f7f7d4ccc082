package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

// ErrCodeRequired is returned when the login code is blank.
var ErrCodeRequired = errors.New("shop code is required")

// Service defines shop lookup and trial signup.
type Service interface {
	// Lookup fetches a shop by its exact code. Lookups have no side effects.
	Lookup(ctx context.Context, code string) (*Shop, error)
	// Signup creates a trial shop and returns its new code.
	Signup(ctx context.Context, req SignupRequest) (string, error)
}

type service struct {
	repo     Repository
	validate *validation.Validator
}

func NewService(repo Repository, v *validation.Validator) Service {
	return &service{repo: repo, validate: v}
}

func (s *service) Lookup(ctx context.Context, code string) (*Shop, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	sh, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup shop %s: %w", code, err)
	}
	return sh, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	req.Trim()
	if err := s.validate.Check(req); err != nil {
		return "", err
	}
	code, err := s.repo.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create shop: %w", err)
	}
	return code, nil
}

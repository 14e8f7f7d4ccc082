package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

// ErrNothingToRecord is returned for an entry with zero sales and zero expenses.
var ErrNothingToRecord = errors.New("nothing to record")

const (
	previewDays = 2
	weekDays    = 7
)

// Service defines the daily entry and weekly summary logic.
type Service interface {
	// Latest returns the most recent record, nil when there is none.
	Latest(ctx context.Context, shopID string) (*Record, error)
	// Week returns the last seven days in ascending date order.
	Week(ctx context.Context, shopID string) (*Week, error)
	// Submit sends today's figures. Blank and invalid entries never reach the API.
	Submit(ctx context.Context, shopID string, e Entry) (*Receipt, error)
}

type service struct {
	repo     Repository
	validate *validation.Validator
}

func NewService(repo Repository, v *validation.Validator) Service {
	return &service{repo: repo, validate: v}
}

func (s *service) Latest(ctx context.Context, shopID string) (*Record, error) {
	records, err := s.repo.History(ctx, shopID, previewDays)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	latest := records[0]
	for _, r := range records[1:] {
		if !r.Date.Before(latest.Date.Time) {
			latest = r
		}
	}
	return &latest, nil
}

func (s *service) Week(ctx context.Context, shopID string) (*Week, error) {
	records, err := s.repo.History(ctx, shopID, weekDays)
	if err != nil {
		return nil, fmt.Errorf("weekly sales: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date.Time)
	})
	days := make([]finance.Day, len(records))
	for i, r := range records {
		days[i] = r.Day()
	}
	return &Week{Records: records, Totals: finance.Summarize(days)}, nil
}

func (s *service) Submit(ctx context.Context, shopID string, e Entry) (*Receipt, error) {
	if err := s.validate.Check(e); err != nil {
		return nil, err
	}
	if e.IsEmpty() {
		return nil, ErrNothingToRecord
	}
	rec, err := s.repo.Record(ctx, shopID, e)
	if err != nil {
		return nil, fmt.Errorf("record daily entry: %w", err)
	}
	return rec, nil
}

package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrPaymentOutOfRange is returned for payments below zero or above what is owed.
	ErrPaymentOutOfRange = errors.New("payment out of range")
)

// Service defines the credit ledger logic.
type Service interface {
	Ledger(ctx context.Context, shopID string) (*Ledger, error)
	Add(ctx context.Context, shopID string, c NewCustomer) (*Customer, error)
	RecordPayment(ctx context.Context, shopID, customerID string, amount decimal.Decimal) (*Payment, error)
	Remind(ctx context.Context, sh *shop.Shop, customerID string) (*Reminder, error)
}

type service struct {
	source   Source
	notifier Notifier
	validate *validation.Validator
	log      logrus.FieldLogger
}

func NewService(source Source, notifier Notifier, v *validation.Validator, log logrus.FieldLogger) Service {
	return &service{source: source, notifier: notifier, validate: v, log: log}
}

func (s *service) Ledger(ctx context.Context, shopID string) (*Ledger, error) {
	customers, err := s.source.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list credit customers: %w", err)
	}
	l := NewLedger(customers)
	return &l, nil
}

func (s *service) Add(ctx context.Context, shopID string, c NewCustomer) (*Customer, error) {
	c.trim()
	if err := s.validate.Check(c); err != nil {
		return nil, err
	}
	added, err := s.source.Add(ctx, shopID, c)
	if err != nil {
		return nil, fmt.Errorf("add credit customer %s: %w", c.Name, err)
	}
	return added, nil
}

func (s *service) RecordPayment(ctx context.Context, shopID, customerID string, amount decimal.Decimal) (*Payment, error) {
	c, err := s.find(ctx, shopID, customerID)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() || amount.GreaterThan(c.Owed) {
		return nil, ErrPaymentOutOfRange
	}
	updated, err := s.source.RecordPayment(ctx, shopID, *c, amount)
	if err != nil {
		return nil, fmt.Errorf("record payment for %s: %w", c.Name, err)
	}
	return &Payment{Customer: *updated, Amount: amount}, nil
}

func (s *service) Remind(ctx context.Context, sh *shop.Shop, customerID string) (*Reminder, error) {
	c, err := s.find(ctx, sh.ID, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.source.Remind(ctx, sh.ID, *c); err != nil {
		return nil, fmt.Errorf("remind %s: %w", c.Name, err)
	}
	link, err := s.notifier.ReminderLink(sh.DisplayName(), *c)
	if err != nil {
		s.log.WithFields(logrus.Fields{"customer": c.Name, "phone": c.Phone, "error": err}).
			Warn("no whatsapp link for reminder")
	}
	return &Reminder{Customer: *c, Link: link}, nil
}

func (s *service) find(ctx context.Context, shopID, customerID string) (*Customer, error) {
	customers, err := s.source.List(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list credit customers: %w", err)
	}
	for _, c := range customers {
		if c.ID == customerID {
			return &c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// Package account shows a shop's plan, fee and trial, and how to pay.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/phone"
)

// BankDetails is where manual transfers go. Reference is the shop code.
type BankDetails struct {
	Name      string
	Account   string
	Branch    string
	Reference string
}

// Overview is everything the account screen shows.
type Overview struct {
	Plan          string
	Fee           decimal.Decimal
	IsTrial       bool
	TrialDays     int
	ShowTrialDays bool
	Status        string
	Bank          BankDetails
	// CashLink opens a WhatsApp chat with support prefilled with CASH.
	CashLink string
}

// Service defines the account screen logic.
type Service interface {
	Overview(sh *shop.Shop, now time.Time) Overview
	// PayNow starts an instant EFT for one weekly fee.
	PayNow(ctx context.Context, sh *shop.Shop) (*PaymentSession, error)
}

type service struct {
	bank     BankDetails
	gateways GatewayRegistry
	support  string
	region   string
}

func NewService(bank BankDetails, gateways GatewayRegistry, support, region string) Service {
	return &service{bank: bank, gateways: gateways, support: support, region: region}
}

func (s *service) Overview(sh *shop.Shop, now time.Time) Overview {
	o := Overview{
		Plan:    sh.PlanLabel(shop.PlanGrowth),
		Fee:     sh.Fee(),
		IsTrial: sh.IsTrial(),
		Status:  sh.StatusLabel(),
		Bank:    s.bank,
	}
	o.Bank.Reference = sh.ID
	if o.Bank.Reference == "" {
		o.Bank.Reference = "SHOP"
	}
	if o.IsTrial {
		o.TrialDays, o.ShowTrialDays = sh.TrialDays(now)
	}
	if link, err := phone.WhatsAppLink(s.support, s.region, "CASH"); err == nil {
		o.CashLink = link
	}
	return o
}

func (s *service) PayNow(ctx context.Context, sh *shop.Shop) (*PaymentSession, error) {
	gw, ok := s.gateways[ProviderInstantEFT]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for %s", ProviderInstantEFT)
	}
	return gw.Initiate(ctx, &PaymentRequest{
		ShopID:      sh.ID,
		Amount:      sh.Fee(),
		Reference:   sh.ID,
		Description: "Mekgoro weekly subscription",
	})
}

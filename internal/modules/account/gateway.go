package account

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider names a way of paying the subscription online.
type Provider string

const ProviderInstantEFT Provider = "INSTANT_EFT"

// Gateway is the provider-agnostic interface every online payment adapter
// implements.
type Gateway interface {
	// Initiate starts a payment and returns where to send the merchant.
	Initiate(ctx context.Context, req *PaymentRequest) (*PaymentSession, error)
}

// GatewayRegistry maps providers to their Gateway implementations.
type GatewayRegistry map[Provider]Gateway

// PaymentRequest asks a gateway to collect one subscription fee.
type PaymentRequest struct {
	ShopID      string
	Amount      decimal.Decimal
	Reference   string
	Description string
}

// PaymentSession is a gateway's answer to Initiate.
type PaymentSession struct {
	Provider    Provider
	ProviderRef string
	RedirectURL string
	Message     string
}

// ── Instant EFT Adapter ───────────────────────────────────────────────────────
// Placeholder until an EFT provider is contracted. It hands out a reference
// and, when a gateway URL is configured, a redirect carrying it.

type instantEFTGateway struct {
	baseURL string
}

func NewInstantEFTGateway(baseURL string) Gateway {
	return &instantEFTGateway{baseURL: baseURL}
}

func (g *instantEFTGateway) Initiate(ctx context.Context, req *PaymentRequest) (*PaymentSession, error) {
	if req.Reference == "" {
		return nil, fmt.Errorf("reference is required for instant EFT")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	ref := fmt.Sprintf("EFT-%s-%s", time.Now().Format("20060102150405"), uuid.NewString()[:8])
	sess := &PaymentSession{
		Provider:    ProviderInstantEFT,
		ProviderRef: ref,
		Message:     "Redirecting to payment gateway...",
	}
	if g.baseURL != "" {
		u, err := url.Parse(g.baseURL)
		if err != nil {
			return nil, fmt.Errorf("payment gateway url: %w", err)
		}
		q := u.Query()
		q.Set("ref", ref)
		q.Set("reference", req.Reference)
		q.Set("amount", req.Amount.StringFixed(2))
		u.RawQuery = q.Encode()
		sess.RedirectURL = u.String()
	}
	return sess, nil
}

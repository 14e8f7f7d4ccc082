package shop

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
)

// ── Shop ──────────────────────────────────────────────────────────────────────

// Plan is the subscription plan a shop is on.
type Plan string

const (
	PlanTrial  Plan = "trial"
	PlanGrowth Plan = "growth"
)

// Status is the billing state the shop API reports for a shop.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// TrialDateLayout is the format of trial_ends.
const TrialDateLayout = "2006-01-02"

// DefaultWeeklyFee applies when the API omits weekly_fee.
var DefaultWeeklyFee = decimal.NewFromInt(150)

// Shop is a merchant account as returned by get_shop.
type Shop struct {
	ID        string              `json:"shop_id"`
	Name      string              `json:"name"`
	Owner     string              `json:"owner,omitempty"`
	Phone     string              `json:"phone,omitempty"`
	Location  string              `json:"location,omitempty"`
	Plan      Plan                `json:"plan,omitempty"`
	Status    Status              `json:"status,omitempty"`
	TrialEnds string              `json:"trial_ends,omitempty"`
	WeeklyFee decimal.NullDecimal `json:"weekly_fee"`
}

// DisplayName is the shop name, or "My Shop" when the API sent none.
func (s *Shop) DisplayName() string {
	if s.Name == "" {
		return "My Shop"
	}
	return s.Name
}

// DisplayLocation is the location, or "---" when unknown.
func (s *Shop) DisplayLocation() string {
	if s.Location == "" {
		return "---"
	}
	return s.Location
}

// PlanLabel is the upper-cased plan name, falling back to fallback.
func (s *Shop) PlanLabel(fallback Plan) string {
	p := s.Plan
	if p == "" {
		p = fallback
	}
	return strings.ToUpper(string(p))
}

// StatusLabel is the upper-cased status, trial when absent.
func (s *Shop) StatusLabel() string {
	st := s.Status
	if st == "" {
		st = StatusTrial
	}
	return strings.ToUpper(string(st))
}

// IsTrial reports whether the shop is in its free trial. A missing status
// counts as trial.
func (s *Shop) IsTrial() bool {
	return s.Status == "" || s.Status == StatusTrial
}

// Fee is the weekly fee, DefaultWeeklyFee when the API omitted it.
func (s *Shop) Fee() decimal.Decimal {
	if s.WeeklyFee.Valid {
		return s.WeeklyFee.Decimal
	}
	return DefaultWeeklyFee
}

// TrialEnd parses trial_ends.
func (s *Shop) TrialEnd() (time.Time, error) {
	return time.ParseInLocation(TrialDateLayout, strings.TrimSpace(s.TrialEnds), time.Local)
}

// TrialDays returns the whole days left in the trial as of now. ok is false
// when the shop is not on trial or the end date is missing or unparseable.
func (s *Shop) TrialDays(now time.Time) (days int, ok bool) {
	if !s.IsTrial() || strings.TrimSpace(s.TrialEnds) == "" {
		return 0, false
	}
	end, err := s.TrialEnd()
	if err != nil {
		return 0, false
	}
	return finance.TrialDaysRemaining(end, now), true
}

// ── Signup ────────────────────────────────────────────────────────────────────

// SignupRequest is the trial signup form.
type SignupRequest struct {
	Name     string `form:"name" validate:"required" msg:"Shop name is required"`
	Owner    string `form:"owner" validate:"required" msg:"Your name is required"`
	Phone    string `form:"phone" validate:"required" msg:"WhatsApp number is required"`
	Location string `form:"location" validate:"required" msg:"Township/area is required"`
}

// Trim strips surrounding whitespace from every field.
func (r *SignupRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Owner = strings.TrimSpace(r.Owner)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Location = strings.TrimSpace(r.Location)
}

// Plan and type every self-service signup is created with.
const (
	SignupPlan = PlanGrowth
	SignupType = "spaza"
)

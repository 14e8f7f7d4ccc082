package sales

import (
	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// ── Records ───────────────────────────────────────────────────────────────────

// Details are the optional itemised counts of a day.
type Details struct {
	Bread   int `json:"bread"`
	Drinks  int `json:"drinks"`
	Airtime int `json:"airtime"`
}

// Record is one accepted day of figures. Records never change once the API
// has accepted them.
type Record struct {
	Date     backend.Date        `json:"date"`
	Revenue  decimal.Decimal     `json:"revenue"`
	Expenses decimal.Decimal     `json:"expenses"`
	Profit   decimal.NullDecimal `json:"profit"`
	Notes    string              `json:"notes,omitempty"`
	Details  *Details            `json:"details,omitempty"`
}

// NetProfit is the API's profit figure, or revenue minus expenses when the
// API left it out.
func (r Record) NetProfit() decimal.Decimal {
	if r.Profit.Valid {
		return r.Profit.Decimal
	}
	return finance.Profit(r.Revenue, r.Expenses)
}

// Margin is NetProfit as a percentage of revenue.
func (r Record) Margin() decimal.Decimal {
	return finance.Margin(r.NetProfit(), r.Revenue)
}

// Day converts r for finance.Summarize.
func (r Record) Day() finance.Day {
	return finance.Day{Revenue: r.Revenue, Expenses: r.Expenses, Profit: r.NetProfit()}
}

// Week is up to seven records in ascending date order with their totals.
type Week struct {
	Records []Record
	Totals  finance.Totals
}

// ── Entry ─────────────────────────────────────────────────────────────────────

// Entry is the daily entry form.
type Entry struct {
	Revenue  decimal.Decimal `form:"revenue" validate:"gte=0" msg:"Total sales can't be negative"`
	Expenses decimal.Decimal `form:"expenses" validate:"gte=0" msg:"Stock bought can't be negative"`
	Bread    int             `form:"bread" validate:"gte=0,lte=100" msg:"Bread loaves must be between 0 and 100"`
	Drinks   int             `form:"drinks" validate:"gte=0,lte=100" msg:"Cold drinks must be between 0 and 100"`
	Airtime  int             `form:"airtime" validate:"gte=0,lte=5000" msg:"Airtime must be between R0 and R5000"`
	Notes    string          `form:"notes" validate:"max=500" msg:"Keep notes under 500 characters"`
}

// IsEmpty reports whether neither sales nor expenses were entered.
func (e Entry) IsEmpty() bool {
	return e.Revenue.IsZero() && e.Expenses.IsZero()
}

// Receipt is the API's answer to an accepted daily entry.
type Receipt struct {
	Success bool            `json:"success"`
	Profit  decimal.Decimal `json:"profit"`
	Alerts  []string        `json:"alerts"`
}

// Package finance holds the small pieces of arithmetic the dashboard shows
// next to the figures returned by the shop API.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Profit is revenue minus expenses. It is never clamped.
func Profit(revenue, expenses decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses)
}

// Margin is profit as a percentage of revenue, with revenue floored at 1 to
// avoid dividing by zero. Zero revenue always yields a zero margin.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(decimal.Max(revenue, one)).Mul(hundred)
}

// Day is one day of figures fed into Summarize.
type Day struct {
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// Totals aggregates a window of days.
type Totals struct {
	Days      int
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	Profit    decimal.Decimal
	AvgMargin decimal.Decimal
}

// Summarize sums revenue, expenses and profit over days and derives the
// average margin from the totals.
func Summarize(days []Day) Totals {
	t := Totals{Days: len(days)}
	for _, d := range days {
		t.Revenue = t.Revenue.Add(d.Revenue)
		t.Expenses = t.Expenses.Add(d.Expenses)
		t.Profit = t.Profit.Add(d.Profit)
	}
	t.AvgMargin = Margin(t.Profit, t.Revenue)
	return t
}

// TrialDaysRemaining counts whole calendar days from now until the trial end
// date, floored at zero. Both sides are reduced to their calendar dates first.
func TrialDaysRemaining(trialEnd, now time.Time) int {
	end := time.Date(trialEnd.Year(), trialEnd.Month(), trialEnd.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

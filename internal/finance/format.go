package finance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Rand formats an amount in rand with thousands separators. Whole amounts
// have no decimals; anything else is shown to the cent.
func Rand(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("R%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("R%.2f", f)
}

// RandWhole formats an amount rounded to whole rand.
func RandWhole(d decimal.Decimal) string {
	return printer.Sprintf("R%d", d.Round(0).IntPart())
}

// Percent formats a percentage with the given number of decimals.
func Percent(d decimal.Decimal, places int32) string {
	return d.StringFixed(places) + "%"
}

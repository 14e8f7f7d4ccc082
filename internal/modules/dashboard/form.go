package dashboard

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

const (
	msgNotANumber      = "Enter a number"
	msgNotAWholeNumber = "Enter a whole number"
)

// Amounts typed into the dashboard stay well inside these bounds. Anything
// outside is refused before it can be rescaled or serialized.
const (
	maxNumberLen = 24
	maxDecimals  = 4
)

// Form reads typed values out of a posted form, collecting parse failures
// as field errors.
type Form struct {
	r      *http.Request
	Errors validation.Errors
	Values map[string]string
}

// ParseForm parses r's body.
func ParseForm(r *http.Request) (*Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &Form{r: r, Errors: validation.Errors{}, Values: map[string]string{}}, nil
}

// String returns the trimmed value of name.
func (f *Form) String(name string) string {
	v := strings.TrimSpace(f.r.PostFormValue(name))
	f.Values[name] = v
	return v
}

// Decimal parses name, returning def when it is blank. Scientific notation,
// over-long input and more than maxDecimals places count as not a number.
func (f *Form) Decimal(name string, def decimal.Decimal) decimal.Decimal {
	v := f.String(name)
	if v == "" {
		return def
	}
	v = strings.ReplaceAll(v, ",", "")
	if len(v) > maxNumberLen || strings.ContainsAny(v, "eE") {
		f.Errors[name] = msgNotANumber
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.Exponent() < -maxDecimals {
		f.Errors[name] = msgNotANumber
		return def
	}
	return d
}

// Int parses name, returning def when it is blank.
func (f *Form) Int(name string, def int) int {
	v := f.String(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.Errors[name] = msgNotAWholeNumber
		return def
	}
	return n
}

// Merge folds field errors from err into the form. It reports whether err
// carried field errors; any other error is left to the caller.
func (f *Form) Merge(err error) bool {
	fields, ok := validation.AsErrors(err)
	if !ok {
		return false
	}
	for k, v := range fields {
		if _, seen := f.Errors[k]; !seen {
			f.Errors[k] = v
		}
	}
	return true
}

// Valid reports whether parsing found no problems.
func (f *Form) Valid() bool { return len(f.Errors) == 0 }

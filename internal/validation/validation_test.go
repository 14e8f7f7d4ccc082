package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryForm struct {
	Name    string          `form:"name" validate:"required" msg:"Name is required"`
	Revenue decimal.Decimal `form:"revenue" validate:"gte=0"`
	Bread   int             `form:"bread" validate:"gte=0,lte=100"`
}

func TestCheckPasses(t *testing.T) {
	v := New()
	err := v.Check(entryForm{Name: "x", Revenue: decimal.NewFromInt(10), Bread: 100})
	assert.NoError(t, err)
}

func TestCheckCollectsFieldMessages(t *testing.T) {
	v := New()
	err := v.Check(&entryForm{Revenue: decimal.NewFromInt(-1), Bread: 101})
	require.Error(t, err)

	fields, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, Errors{
		"name":    "Name is required",
		"revenue": "revenue must be at least 0",
		"bread":   "bread must be at most 100",
	}, fields)
	assert.Equal(t, "bread: bread must be at most 100; name: Name is required; revenue: revenue must be at least 0", err.Error())
}

func TestAsErrorsRejectsOtherErrors(t *testing.T) {
	_, ok := AsErrors(assert.AnError)
	assert.False(t, ok)
}

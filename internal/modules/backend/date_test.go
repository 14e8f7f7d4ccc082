package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2026-10-13", "2026-10-13T18:30:00Z", "2026-10-13 18:30:00", " 2026-10-13 "} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 13, d.Day(), s)
	}

	_, err := ParseDate("13/10/2026")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var v struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-02-15"}`), &v))
	assert.Equal(t, "2026-02-15", v.Date.Format(DateLayout))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-02-15"}`, string(out))

	v.Date = Date{}
	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &v))
	assert.True(t, v.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":20260215}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &v))
}

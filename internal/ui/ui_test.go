package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/view"
)

var now = time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)

func TestNewHeader(t *testing.T) {
	h := NewHeader(&shop.Shop{}, now)
	assert.Equal(t, "My Shop", h.ShopName)
	assert.Equal(t, "---", h.Location)
	assert.Equal(t, "---", h.Code)
	assert.Equal(t, "TRIAL", h.Plan)
	assert.False(t, h.ShowTrial)

	h = NewHeader(&shop.Shop{ID: "SHOP123", Plan: shop.PlanGrowth, Status: shop.StatusTrial, TrialEnds: "2026-10-20"}, now)
	assert.Equal(t, "GROWTH", h.Plan)
	assert.True(t, h.ShowTrial)
	assert.Equal(t, 6, h.TrialDays)
}

func TestMenu(t *testing.T) {
	items := Menu(view.Credit)
	require.Len(t, items, len(view.Menu))
	for _, it := range items {
		assert.Equal(t, it.Href == "/app/credit", it.Active, it.Label)
	}
	assert.Equal(t, "/login", Href(view.Login))
	assert.Equal(t, "/app/weekly", Href(view.Weekly))
}

func TestNotices(t *testing.T) {
	n := Error("Failed").WithLink("/app/account", "Go to Account")
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "/app/account", n.Link)

	var p Page
	p.Notify(Info("hello"), n)
	assert.Len(t, p.Notices, 2)
	assert.False(t, p.HasErrors())
	p.Fields = map[string]string{"name": "Product name is required"}
	assert.True(t, p.HasErrors())
}

func TestLineChart(t *testing.T) {
	c := LineChart([]string{"a", "b", "c"},
		Series{Name: "Revenue", Values: []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(300), decimal.NewFromInt(200)}},
		Series{Name: "Profit", Values: []decimal.Decimal{decimal.NewFromInt(-50), decimal.NewFromInt(60)}},
	)

	require.Len(t, c.Lines, 2)
	require.Len(t, c.XLabels, 3)
	assert.Equal(t, float64(chartLeft), c.XLabels[0].X)
	assert.Equal(t, float64(chartWidth-chartRight), c.XLabels[2].X)

	revenue := c.Lines[0]
	require.Len(t, revenue.Dots, 3)
	assert.Equal(t, float64(chartTop), revenue.Dots[1].Y, "maximum sits on the top edge")
	assert.Len(t, strings.Fields(revenue.Points), 3)

	profit := c.Lines[1]
	require.Len(t, profit.Dots, 2)
	assert.Equal(t, c.Bottom, profit.Dots[0].Y, "minimum sits on the bottom edge")
	assert.Greater(t, c.ZeroY, float64(chartTop))
	assert.Less(t, c.ZeroY, c.Bottom)

	texts := make([]string, 0, len(c.YLabels))
	for _, l := range c.YLabels {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"R300", "R0", "R-50"}, texts)
}

func TestLineChartSinglePoint(t *testing.T) {
	c := LineChart([]string{"only"}, Series{Values: []decimal.Decimal{decimal.Zero}})
	require.Len(t, c.Lines[0].Dots, 1)
	assert.Equal(t, float64(chartLeft+chartPlotW/2), c.Lines[0].Dots[0].X)
}

func TestRendererRendersEveryView(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, id := range view.All() {
		t.Run(string(id), func(t *testing.T) {
			rec := httptest.NewRecorder()
			p := Page{Title: "t", View: id, Today: now, Support: "0712345678"}
			if id != view.Login {
				p.Header = NewHeader(&shop.Shop{ID: "SHOP123", Name: "Thabo Spaza"}, now)
				p.Menu = Menu(id)
			}
			require.NoError(t, r.Render(rec, http.StatusOK, p))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			if id != view.Login {
				assert.Contains(t, rec.Body.String(), "Thabo Spaza")
			}
		})
	}
}

func TestRendererUnknownView(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, Page{View: "nope"}))
}

func TestRenderFuncs(t *testing.T) {
	assert.Equal(t, "Wednesday, 14 October 2026", now.Format(LongDate))
	assert.Equal(t, "Wed 14 Oct", now.Format(ShortDate))
	assert.Equal(t, "14 Oct", now.Format(DayMonth))
}

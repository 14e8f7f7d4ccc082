package ui

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
)

const (
	chartWidth   = 600
	chartHeight  = 240
	chartLeft    = 64
	chartRight   = 12
	chartTop     = 12
	chartBottom  = 28
	chartPlotW   = chartWidth - chartLeft - chartRight
	chartPlotH   = chartHeight - chartTop - chartBottom
	chartXLabelY = chartHeight - 8
)

// Series is one line of a chart.
type Series struct {
	Name   string
	Color  string
	Values []decimal.Decimal
}

// Point is a position inside the SVG viewport.
type Point struct{ X, Y float64 }

// Line is a Series projected onto the viewport.
type Line struct {
	Name   string
	Color  string
	Points string
	Dots   []Point
}

// AxisLabel is a piece of text placed on an axis.
type AxisLabel struct {
	X, Y float64
	Text string
}

// Chart is a ready-to-draw line chart.
type Chart struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	ZeroY         float64
	Lines         []Line
	XLabels       []AxisLabel
	YLabels       []AxisLabel
}

// LineChart lays out series over the x-axis labels. Series shorter than
// labels are drawn up to their last value.
func LineChart(labels []string, series ...Series) Chart {
	lo, hi := decimal.Zero, decimal.NewFromInt(1)
	for _, s := range series {
		for _, v := range s.Values {
			lo = decimal.Min(lo, v)
			hi = decimal.Max(hi, v)
		}
	}
	loF, _ := lo.Float64()
	hiF, _ := hi.Float64()
	span := hiF - loF

	x := func(i int) float64 {
		if len(labels) <= 1 {
			return chartLeft + chartPlotW/2
		}
		return chartLeft + float64(i)*chartPlotW/float64(len(labels)-1)
	}
	y := func(v float64) float64 {
		return chartTop + (hiF-v)/span*chartPlotH
	}

	c := Chart{
		Width: chartWidth, Height: chartHeight,
		Left: chartLeft, Right: chartWidth - chartRight,
		Top: chartTop, Bottom: chartTop + chartPlotH,
		ZeroY: y(0),
	}
	for i, l := range labels {
		c.XLabels = append(c.XLabels, AxisLabel{X: x(i), Y: chartXLabelY, Text: l})
	}
	c.YLabels = append(c.YLabels, AxisLabel{X: chartLeft - 6, Y: chartTop + 4, Text: finance.RandWhole(hi)})
	if !lo.IsZero() {
		c.YLabels = append(c.YLabels, AxisLabel{X: chartLeft - 6, Y: c.ZeroY + 4, Text: "R0"})
	}
	c.YLabels = append(c.YLabels, AxisLabel{X: chartLeft - 6, Y: c.Bottom + 4, Text: finance.RandWhole(lo)})

	for _, s := range series {
		line := Line{Name: s.Name, Color: s.Color}
		pts := make([]string, 0, len(s.Values))
		for i, v := range s.Values {
			if i >= len(labels) {
				break
			}
			f, _ := v.Float64()
			p := Point{X: x(i), Y: y(f)}
			line.Dots = append(line.Dots, p)
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}
		line.Points = strings.Join(pts, " ")
		c.Lines = append(c.Lines, line)
	}
	return c
}

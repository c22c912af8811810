// Package charts renders report aggregates as PNG images for the report view.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"expenselog/internal/core"
)

// Generator renders chart images from report data.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the category split as a pie chart. Slices below 1% of
// the overall total are folded away to keep labels readable. Returns nil
// bytes when there is nothing to draw.
func (g *Generator) CategoryPie(rep core.Report) ([]byte, error) {
	if len(rep.ByCategory) == 0 || !rep.Overall.IsPositive() {
		return nil, nil
	}

	total := rep.Overall.InexactFloat64()
	values := make([]chart.Value, 0, len(rep.ByCategory))
	for _, cat := range rep.ByCategory {
		amount := cat.Total.InexactFloat64()
		percentage := amount / total * 100
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: $%.2f (%.1f%%)", cat.Name, amount, percentage),
			Value: amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// MonthlyBars renders the per-month totals as a bar chart.
func (g *Generator) MonthlyBars(rep core.Report) ([]byte, error) {
	if len(rep.ByMonth) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(rep.ByMonth))
	for _, m := range rep.ByMonth {
		bars = append(bars, chart.Value{
			Label: m.Month,
			Value: m.Total.InexactFloat64(),
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(180),
			},
		})
	}

	graph := chart.BarChart{
		Width:    1000,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render monthly bar chart: %w", err)
	}
	return buffer.Bytes(), nil
}

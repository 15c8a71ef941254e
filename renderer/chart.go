package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/etnz/folio"
)

// PerformanceChart renders the samples as a PNG line chart.
func PerformanceChart(name string, samples []folio.Sample, currency string) ([]byte, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples to draw a chart, got %d", folio.ErrInvalidArgument, len(samples))
	}

	xValues := make([]time.Time, len(samples))
	yValues := make([]float64, len(samples))
	for i, s := range samples {
		xValues[i] = s.Date.Time()
		yValues[i] = s.Value
	}

	value := chart.TimeSeries{
		Name: "Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Performance of %s", name),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v any) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return Money(f, currency)
				}
				return ""
			},
		},
		Series: []chart.Series{value},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart of %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

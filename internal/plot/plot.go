// Package plot renders prediction probability distributions as PNG
// bar charts.
package plot

import (
	"bytes"
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
)

// Probabilities renders one bar per hemorrhage type, scaled to the
// probability the model assigned.
func Probabilities(breakdown []predict.LabelProbability) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, errors.New("plot: no probabilities to render")
	}

	bars := make([]chart.Value, 0, len(breakdown))
	for _, lp := range breakdown {
		bars = append(bars, chart.Value{
			Label: predict.ShortLabel(lp.Label),
			Value: lp.Probability,
		})
	}

	graph := chart.BarChart{
		Title:      "Hemorrhage Type Probabilities",
		Width:      640,
		Height:     420,
		BarWidth:   72,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

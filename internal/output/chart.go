package output

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"gatekeep/internal/moderate"
)

// WritePieChart renders the offense-type distribution as a PNG pie
// chart, with per-slice percentage labels. Callers skip it entirely
// when there are no offensive comments; rendering an empty pie is an
// error here.
func WritePieChart(w io.Writer, rep *moderate.Report) error {
	if len(rep.Offensive) == 0 {
		return fmt.Errorf("no offensive comments to chart")
	}

	total := float64(len(rep.Offensive))
	values := make([]chart.Value, 0, len(rep.TypeOrder))
	for _, typ := range rep.TypeOrder {
		count := rep.TypeCounts[typ]
		values = append(values, chart.Value{
			Value: float64(count),
			Label: fmt.Sprintf("%s (%.1f%%)", typ, float64(count)/total*100),
		})
	}

	pie := chart.PieChart{
		Title:  "Offensive Comment Type Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

package chart

import (
	"strconv"

	"FinPeek/internal/model"

	"github.com/vicanso/go-charts/v2"
)

// PNG renders series as a dark line chart image for export.
func PNG(title string, series model.Series) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	labels := make([]string, len(series))
	for i := range series {
		labels[i] = strconv.Itoa(i + 1)
	}

	painter, err := charts.LineRender([][]float64{series},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeDark),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

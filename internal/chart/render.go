package chart

import (
	"errors"
	"fmt"
	"strings"

	"FinPeek/internal/model"
)

// ErrEmptySeries is returned when asked to draw zero points.
var ErrEmptySeries = errors.New("chart: empty series")

// Point is a position in viewport coordinates, y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawingInstructions describe a line chart with a filled area under it.
type DrawingInstructions struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Padding  float64 `json:"padding"`
	Baseline float64 `json:"baseline"`
	Color    string  `json:"color"`
	Points   []Point `json:"points"`
	LinePath string  `json:"line_path"`
	AreaPath string  `json:"area_path"`
}

// RenderPoints maps series into the viewport so the minimum sits on the
// bottom padding line and the maximum on the top one.
func RenderPoints(series model.Series, width, height, padding float64, color string) (DrawingInstructions, error) {
	if len(series) == 0 {
		return DrawingInstructions{}, ErrEmptySeries
	}

	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	n := len(series)
	innerW := width - 2*padding
	innerH := height - 2*padding
	baseline := height - padding

	points := make([]Point, n)
	for i, v := range series {
		x := width / 2
		if n > 1 {
			x = padding + float64(i)/float64(n-1)*innerW
		}
		points[i] = Point{X: x, Y: baseline - (v-lo)/rng*innerH}
	}

	var line strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s %s %s ", cmd, num(p.X), num(p.Y))
	}
	linePath := strings.TrimSpace(line.String())
	areaPath := fmt.Sprintf("%s L %s %s L %s %s Z",
		linePath, num(points[n-1].X), num(baseline), num(points[0].X), num(baseline))

	return DrawingInstructions{
		Width:    width,
		Height:   height,
		Padding:  padding,
		Baseline: baseline,
		Color:    color,
		Points:   points,
		LinePath: linePath,
		AreaPath: areaPath,
	}, nil
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

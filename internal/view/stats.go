package view

import (
	"math"

	"FinPeek/internal/calculator"
	"FinPeek/internal/model"
)

// Stats summarises the chart window shown under each chart.
type Stats struct {
	HighText    string    `json:"high_text"`
	LowText     string    `json:"low_text"`
	AverageText string    `json:"average_text"`
	ChangeText  string    `json:"change_text"`
	Sentiment   Sentiment `json:"sentiment"`
	// Position is where the last close sits between low (0) and high (1).
	Position float64 `json:"position"`
}

// BuildStats returns false for an empty series.
func BuildStats(series model.Series) (Stats, bool) {
	high, low, err := calculator.Range(series)
	if err != nil {
		return Stats{}, false
	}
	avg, _ := calculator.SMA(series, len(series))
	pos, _ := calculator.Position(series[len(series)-1], high, low)

	s := Stats{
		HighText:    "$" + fixed2(high),
		LowText:     "$" + fixed2(low),
		AverageText: "$" + fixed2(avg),
		Sentiment:   Positive,
		Position:    pos,
	}
	if change, err := calculator.WindowChange(series); err == nil {
		sign := "+"
		if change < 0 {
			sign, s.Sentiment = "-", Negative
		}
		s.ChangeText = sign + fixed2(math.Abs(change)) + "%"
	}
	return s, true
}

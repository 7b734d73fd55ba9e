package view

import (
	"math"

	"FinPeek/internal/model"

	"github.com/shopspring/decimal"
)

// Sentiment colours a quote panel.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
)

// ViewModel is the presentation-ready form of a Quote. It is rebuilt on every
// render and never mutated.
type ViewModel struct {
	Symbol      string    `json:"symbol"`
	PriceText   string    `json:"price_text"`
	ChangeText  string    `json:"change_text"`
	PercentText string    `json:"percent_text"`
	VolumeText  string    `json:"volume_text,omitempty"`
	Sentiment   Sentiment `json:"sentiment"`
}

// Build turns q into a ViewModel. A zero change counts as positive.
func Build(q model.Quote) ViewModel {
	sign, sentiment := "+", Positive
	if q.Change < 0 {
		sign, sentiment = "-", Negative
	}

	vm := ViewModel{
		Symbol:      q.Symbol,
		PriceText:   "$" + fixed2(q.Price),
		ChangeText:  sign + "$" + fixed2(math.Abs(q.Change)),
		PercentText: sign + fixed2(math.Abs(q.ChangePercent)) + "%",
		Sentiment:   sentiment,
	}
	if q.Volume > 0 {
		vm.VolumeText = decimal.NewFromFloat(q.Volume/1e6).StringFixed(1) + "M"
	}
	return vm
}

// Summary renders the one-line change text shown under the price, e.g. "+$1.20 (+0.98%)".
func (vm ViewModel) Summary() string {
	return vm.ChangeText + " (" + vm.PercentText + ")"
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

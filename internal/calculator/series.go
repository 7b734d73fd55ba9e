package calculator

import (
	"errors"
	"math"

	"FinPeek/internal/model"
)

var ErrNoData = errors.New("no data points")

// SMA computes the simple moving average of the last period closes.
func SMA(series model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(series) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for _, v := range series[len(series)-period:] {
		sum += v
	}
	return sum / float64(period), nil
}

// Range returns the highest and lowest close in series.
func Range(series model.Series) (high, low float64, err error) {
	if len(series) == 0 {
		return 0, 0, ErrNoData
	}
	high, low = math.Inf(-1), math.Inf(1)
	for _, v := range series {
		high = math.Max(high, v)
		low = math.Min(low, v)
	}
	return high, low, nil
}

// Position returns where current sits within [low, high], clamped to 0.0~1.0.
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	return math.Min(math.Max((current-low)/(high-low), 0), 1), nil
}

// WindowChange is the percent move from the first to the last close.
func WindowChange(series model.Series) (float64, error) {
	if len(series) == 0 {
		return 0, ErrNoData
	}
	first := series[0]
	if first == 0 {
		return 0, errors.New("first close is zero")
	}
	return (series[len(series)-1] - first) / first * 100, nil
}

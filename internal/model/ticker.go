package model

import (
	"errors"
	"strings"
)

// ErrInvalidTicker is returned when a symbol contains characters a quote provider would reject.
var ErrInvalidTicker = errors.New("invalid ticker")

// Ticker is a normalized, uppercase market symbol.
type Ticker string

// NormalizeTicker trims and uppercases user input. An empty result is returned
// as "" with a nil error so callers can treat blank input as a no-op.
func NormalizeTicker(input string) (Ticker, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return "", nil
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^':
		default:
			return "", ErrInvalidTicker
		}
	}
	return Ticker(s), nil
}

func (t Ticker) String() string { return string(t) }

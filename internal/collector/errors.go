package collector

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a live fetch did not produce data.
type FailureKind string

const (
	// TransportError covers network failures, timeouts and non-2xx responses.
	TransportError FailureKind = "TransportError"
	// ParseError covers malformed bodies and unusable field values.
	ParseError FailureKind = "ParseError"
	// EmptyResult is a well-formed response without quote or series data,
	// e.g. a rate-limit notice or an unknown symbol.
	EmptyResult FailureKind = "EmptyResult"
)

// FetchError is returned by Fetcher implementations.
type FetchError struct {
	Kind   FailureKind
	Op     string
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Symbol, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err. Errors that did not come from a
// Fetcher are treated as transport failures; nil yields "".
func KindOf(err error) FailureKind {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return TransportError
}

func transportErr(op, symbol string, err error) error {
	return &FetchError{Kind: TransportError, Op: op, Symbol: symbol, Err: err}
}

func parseErr(op, symbol string, err error) error {
	return &FetchError{Kind: ParseError, Op: op, Symbol: symbol, Err: err}
}

func emptyErr(op, symbol string, err error) error {
	return &FetchError{Kind: EmptyResult, Op: op, Symbol: symbol, Err: err}
}

package recorder

// FetchEvent records the outcome of one quote or series collection.
type FetchEvent struct {
	Symbol    string
	Op        string // "quote" or "series"
	Timeframe string // empty for quotes
	Source    string // "live" or "mock"
	Kind      string // failure kind when Source is "mock", empty otherwise
	Error     string
}

// Recorder persists fetch telemetry for later analysis.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	Close() error
}

package recorder

import "time"

// IntervalEvent is the outcome of one interval fetch within a run.
type IntervalEvent struct {
	Interval   string
	Resolution string
	Status     string // "ok", "empty" or "failed"
	Bars       int
	FirstTime  int64
	LastTime   int64
	Error      string
}

// RunEvent records one export invocation.
type RunEvent struct {
	Ticker     string
	StartDate  string // ISO date
	Provider   string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Intervals  []IntervalEvent
}

// RunSummary is a ledger row read back for display.
type RunSummary struct {
	ID        int64
	Timestamp time.Time
	Ticker    string
	StartDate string
	Provider  string
	OutputDir string
	OK        int
	Empty     int
	Failed    int
}

// Recorder persists a ledger of export runs.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecentRuns(limit int) ([]RunSummary, error)
	Close() error
}

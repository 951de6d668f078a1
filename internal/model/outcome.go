package model

// Status classifies a single interval fetch.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Outcome is the result of fetching one interval. Bars is never nil; it is
// empty for both StatusEmpty and StatusFailed, and Err is set only for StatusFailed.
type Outcome struct {
	Interval Interval
	Bars     Series
	Status   Status
	Err      error
}

// Counts tallies outcomes by status.
func Counts(outcomes []Outcome) (ok, empty, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case StatusOK:
			ok++
		case StatusEmpty:
			empty++
		case StatusFailed:
			failed++
		}
	}
	return ok, empty, failed
}

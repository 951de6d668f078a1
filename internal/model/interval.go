package model

// Interval is a named sampling resolution and the provider code that serves it.
type Interval struct {
	Name       string
	Resolution string
}

var (
	OneMinute      = Interval{Name: "1min", Resolution: "1m"}
	FiveMinutes    = Interval{Name: "5min", Resolution: "5m"}
	FifteenMinutes = Interval{Name: "15min", Resolution: "15m"}
	Daily          = Interval{Name: "daily", Resolution: "1d"}
	Weekly         = Interval{Name: "weekly", Resolution: "1wk"}
)

// DefaultIntervals returns the fixed interval set in output order.
// A fresh slice is returned on each call so callers may not mutate the shared order.
func DefaultIntervals() []Interval {
	return []Interval{OneMinute, FiveMinutes, FifteenMinutes, Daily, Weekly}
}

// LookupInterval finds an interval of the default set by name.
func LookupInterval(name string) (Interval, bool) {
	for _, iv := range DefaultIntervals() {
		if iv.Name == name {
			return iv, true
		}
	}
	return Interval{}, false
}

func (i Interval) String() string { return i.Name }

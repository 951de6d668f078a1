package model

// Bar is one OHLC observation. Time is seconds since epoch, UTC.
// Field order here is the key order of the written JSON.
type Bar struct {
	Time  int64   `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Series is the ordered bar sequence of one interval.
type Series []Bar

// IsChronological reports whether timestamps never decrease.
func (s Series) IsChronological() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Time < s[i-1].Time {
			return false
		}
	}
	return true
}

// Span returns the first and last timestamps, or zeros for an empty series.
func (s Series) Span() (first, last int64) {
	if len(s) == 0 {
		return 0, 0
	}
	return s[0].Time, s[len(s)-1].Time
}

package collector

import (
	"context"
	"time"
)

// MockProvider returns fixed rows and faults keyed by resolution code.
// Resolutions with neither rows nor a fault return no data.
type MockProvider struct {
	Rows   map[string][]RawBar
	Errors map[string]error
	Calls  []string // resolutions requested, in call order
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchBars(_ context.Context, _ string, _ time.Time, resolution string) ([]RawBar, error) {
	m.Calls = append(m.Calls, resolution)
	if err, ok := m.Errors[resolution]; ok {
		return nil, err
	}
	return m.Rows[resolution], nil
}

// GenerateBars builds count consecutive bars spaced step apart, starting at start.
func GenerateBars(start time.Time, step time.Duration, count int, basePrice float64) []RawBar {
	bars := make([]RawBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = RawBar{
			Time:  start.Add(time.Duration(i) * step).UTC(),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return bars
}

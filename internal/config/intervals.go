package config

import (
	"fmt"

	"TradeFolder/internal/model"
)

// SelectedIntervals resolves the configured interval names against the fixed
// set. Output order always follows the fixed set, not the config order.
// An empty list selects every interval.
func (c *Config) SelectedIntervals() ([]model.Interval, error) {
	all := model.DefaultIntervals()
	if len(c.Intervals) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(c.Intervals))
	for _, name := range c.Intervals {
		if _, ok := model.LookupInterval(name); !ok {
			return nil, fmt.Errorf("intervals: unknown interval %q", name)
		}
		want[name] = true
	}
	selected := make([]model.Interval, 0, len(want))
	for _, iv := range all {
		if want[iv.Name] {
			selected = append(selected, iv)
		}
	}
	return selected, nil
}

package collector

import (
	"context"
	"time"
)

// RawBar is a price bar as a provider returns it, before normalization.
type RawBar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Provider fetches historical bars for one symbol at one resolution,
// starting at start and running up to the present. An empty slice with a
// nil error means the provider had no data for the request.
type Provider interface {
	FetchBars(ctx context.Context, symbol string, start time.Time, resolution string) ([]RawBar, error)
	Name() string
}

package collector

import (
	"context"
	"log"

	"TradeFolder/internal/model"
)

// Collector fetches every configured interval for a request, one attempt each.
type Collector struct {
	Provider      Provider
	Intervals     []model.Interval
	PriceDecimals int32
	OnOutcome     func(model.Outcome) // optional, called after each interval
}

// NewCollector creates a Collector over the given ordered interval set.
func NewCollector(p Provider, intervals []model.Interval, priceDecimals int32) *Collector {
	return &Collector{Provider: p, Intervals: intervals, PriceDecimals: priceDecimals}
}

// Collect returns exactly one outcome per interval, in interval order.
// Provider faults and empty results degrade to an empty series and never
// stop the remaining intervals from being fetched.
func (c *Collector) Collect(ctx context.Context, req model.Request) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(c.Intervals))
	for _, iv := range c.Intervals {
		out := c.FetchInterval(ctx, req, iv)
		outcomes = append(outcomes, out)
		if c.OnOutcome != nil {
			c.OnOutcome(out)
		}
	}
	return outcomes
}

// FetchInterval performs the single fetch for one interval.
func (c *Collector) FetchInterval(ctx context.Context, req model.Request, iv model.Interval) model.Outcome {
	raw, err := c.Provider.FetchBars(ctx, req.Ticker, req.Start, iv.Resolution)
	if err != nil {
		log.Printf("[WARN] %s %s: fetch failed: %v", req.Ticker, iv.Name, err)
		return model.Outcome{Interval: iv, Bars: model.Series{}, Status: model.StatusFailed, Err: err}
	}
	if len(raw) == 0 {
		log.Printf("[INFO] %s %s: no data returned since %s", req.Ticker, iv.Name, req.ISODate())
		return model.Outcome{Interval: iv, Bars: model.Series{}, Status: model.StatusEmpty}
	}
	bars := Normalize(raw, c.PriceDecimals)
	if !bars.IsChronological() {
		log.Printf("[WARN] %s %s: provider returned out-of-order timestamps, keeping provider order", req.Ticker, iv.Name)
	}
	return model.Outcome{Interval: iv, Bars: bars, Status: model.StatusOK}
}

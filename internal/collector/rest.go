package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RESTProvider implements Provider against a generic JSON bars API:
//
//	GET {base}/api/v1/bars?symbol=AAPL&interval=1d&start=2024-03-01
//
// answering with an array of {timestamp, open, high, low, close} objects.
type RESTProvider struct {
	client *resty.Client
}

// NewRESTProvider creates a REST provider with optional bearer auth and proxy.
func NewRESTProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTProvider{client: client}
}

func (p *RESTProvider) Name() string { return "rest" }

// restBar matches keys case-insensitively, so "Open" and "open" both decode.
// Some deployments name the timestamp field "time".
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Time      int64   `json:"time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

func (p *RESTProvider) FetchBars(ctx context.Context, symbol string, start time.Time, resolution string) ([]RawBar, error) {
	var rows []restBar
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":   symbol,
			"interval": resolution,
			"start":    start.Format("2006-01-02"),
		}).
		SetResult(&rows).
		Get("/api/v1/bars")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	bars := make([]RawBar, len(rows))
	for i, r := range rows {
		ts := r.Timestamp
		if ts == 0 {
			ts = r.Time
		}
		bars[i] = RawBar{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
		}
	}
	return bars, nil
}

package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"TradeFolder/internal/collector"
	"TradeFolder/internal/exporter"
	"TradeFolder/internal/model"
	"TradeFolder/internal/notifier"
	"TradeFolder/internal/recorder"
)

// Report describes one finished export.
type Report struct {
	Request    model.Request
	Root       string
	Outcomes   []model.Outcome
	Artifacts  []exporter.Artifacts
	StartedAt  time.Time
	FinishedAt time.Time
}

// Counts tallies the report's outcomes by status.
func (r *Report) Counts() (ok, empty, failed int) {
	return model.Counts(r.Outcomes)
}

// Runner fetches every interval for a request and writes the trade folder.
type Runner struct {
	Collector *collector.Collector
	Writer    *exporter.Writer
	Recorder  recorder.Recorder
	Notifier  notifier.Notifier
	now       func() time.Time
}

// New creates a Runner. A nil recorder or notifier is replaced with a no-op.
func New(col *collector.Collector, w *exporter.Writer, rec recorder.Recorder, n notifier.Notifier) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &Runner{Collector: col, Writer: w, Recorder: rec, Notifier: n, now: time.Now}
}

// Run executes one export. Only filesystem faults and cancellation are
// returned; provider faults are already folded into the outcomes, and ledger
// or notification faults are logged. A run cancelled before writing leaves
// the existing trade folder untouched.
func (r *Runner) Run(ctx context.Context, req model.Request) (*Report, error) {
	rep := &Report{
		Request:   req,
		Root:      r.Writer.Root(req.Ticker, req.DateLabel),
		StartedAt: r.now(),
	}
	log.Printf("[INFO] exporting %s since %s via %s", req.Ticker, req.ISODate(), r.Collector.Provider.Name())

	rep.Outcomes = r.Collector.Collect(ctx, req)
	if err := ctx.Err(); err != nil {
		rep.FinishedAt = r.now()
		return rep, fmt.Errorf("export cancelled before writing: %w", err)
	}

	arts, err := r.Writer.Write(req.Ticker, req.DateLabel, rep.Outcomes)
	rep.Artifacts = arts
	rep.FinishedAt = r.now()
	if err != nil {
		return rep, fmt.Errorf("write trade folder: %w", err)
	}

	if err := r.Recorder.RecordRun(runEvent(rep, r.Collector.Provider.Name())); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	ok, empty, failed := rep.Counts()
	log.Printf("[INFO] %s written: %d ok, %d empty, %d failed", rep.Root, ok, empty, failed)

	msg := notifier.FormatRunSummary(req, rep.Root, rep.Outcomes, rep.FinishedAt.Sub(rep.StartedAt))
	if err := r.Notifier.Notify(ctx, msg); err != nil {
		log.Printf("[ERROR] send run summary: %v", err)
	}
	return rep, nil
}

func runEvent(rep *Report, provider string) *recorder.RunEvent {
	evt := &recorder.RunEvent{
		Ticker:     rep.Request.Ticker,
		StartDate:  rep.Request.ISODate(),
		Provider:   provider,
		OutputDir:  rep.Root,
		StartedAt:  rep.StartedAt,
		FinishedAt: rep.FinishedAt,
		Intervals:  make([]recorder.IntervalEvent, 0, len(rep.Outcomes)),
	}
	for _, o := range rep.Outcomes {
		first, last := o.Bars.Span()
		iv := recorder.IntervalEvent{
			Interval:   o.Interval.Name,
			Resolution: o.Interval.Resolution,
			Status:     string(o.Status),
			Bars:       len(o.Bars),
			FirstTime:  first,
			LastTime:   last,
		}
		if o.Err != nil {
			iv.Error = o.Err.Error()
		}
		evt.Intervals = append(evt.Intervals, iv)
	}
	return evt
}

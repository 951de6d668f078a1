package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"TradeFolder/internal/model"
	"TradeFolder/internal/runner"

	"github.com/robfig/cron/v3"
)

// Exporter runs one export. *runner.Runner satisfies it.
type Exporter interface {
	Run(ctx context.Context, req model.Request) (*runner.Report, error)
}

// Scheduler re-runs exports on cron schedules. Runs never overlap: a tick that
// fires while an export is in progress waits for it to finish.
type Scheduler struct {
	Cron     *cron.Cron
	Exporter Exporter
	Ctx      context.Context
	mu       sync.Mutex
	stopped  bool
}

// ErrStopped is returned by RunNow once Stop has been called.
var ErrStopped = errors.New("scheduler stopped")

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, exp Exporter) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Exporter: exp,
		Ctx:      ctx,
	}
}

// Register schedules a refresh of req on spec (six-field cron with seconds).
func (s *Scheduler) Register(spec string, req model.Request) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow(req) }); err != nil {
		return fmt.Errorf("register refresh %q: %w", spec, err)
	}
	log.Printf("[INFO] refresh of %s scheduled: %s", exportName(req), spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running export to finish,
// whether cron or a bot command started it.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes an export immediately and returns its report. A started
// export runs to completion even if Ctx is cancelled meanwhile.
func (s *Scheduler) RunNow(req model.Request) (*runner.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrStopped
	}

	rep, err := s.Exporter.Run(context.WithoutCancel(s.Ctx), req)
	if err != nil {
		log.Printf("[ERROR] refresh %s: %v", exportName(req), err)
	}
	return rep, err
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return usage
	}
	switch fields[0] {
	case "/export":
		if len(fields) != 3 {
			return usage
		}
		req, err := model.NewRequest(fields[1], fields[2])
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		if _, err := s.RunNow(req); err != nil {
			return fmt.Sprintf("❌ export failed: %v", err)
		}
		return "" // the runner already sent the run summary
	default:
		return usage
	}
}

const usage = "Commands:\n• /export TICKER dd/mm/yyyy"

func exportName(req model.Request) string {
	return req.Ticker + " " + req.DateLabel
}

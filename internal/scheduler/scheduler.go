package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/portfolio"
)

const helpText = "Available commands:\n• /analyze - run the analysis now\n• /top - top recommendations of the last run"

// Scheduler runs the analysis on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Source portfolio.Source
	Ctx    context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler with a seconds-field cron parser.
func NewScheduler(ctx context.Context, runner *Runner, source portfolio.Source) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Source: source,
		Ctx:    ctx,
	}
}

// Register schedules the analysis run on a cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.runTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow executes the analysis immediately. Overlapping runs are skipped.
func (s *Scheduler) RunNow() (*RunResult, error) {
	if !s.running.TryLock() {
		return nil, fmt.Errorf("an analysis run is already in progress")
	}
	defer s.running.Unlock()
	return s.Runner.RunOnce(s.Ctx, s.Source)
}

func (s *Scheduler) runTask() {
	if _, err := s.RunNow(); err != nil {
		log.Errorf("scheduled run: %v", err)
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	cmd := strings.Fields(command)
	if len(cmd) == 0 {
		return helpText
	}
	switch strings.ToLower(strings.SplitN(cmd[0], "@", 2)[0]) {
	case "/analyze":
		res, err := s.RunNow()
		if err != nil {
			return "❌ " + err.Error()
		}
		if s.Runner.Notifier != nil {
			return ""
		}
		return notifier.FormatTop(res.Recommendations, s.Runner.TopN)
	case "/top":
		last := s.Runner.Last()
		if last == nil {
			return notifier.FormatTop(nil, 0)
		}
		return notifier.FormatTop(last.Recommendations, s.Runner.TopN)
	default:
		return helpText
	}
}

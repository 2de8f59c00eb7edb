package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/lock"
	"github.com/JustJay7/lawdesk/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Reconciler is the part of the deadline synchronizer the scheduler drives.
type Reconciler interface {
	Reconcile(ctx context.Context) (deadline.Report, error)
}

// Scheduler runs the periodic reconcile pass.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	lock       *lock.FileLock
	logger     *logger.Logger
	timeout    time.Duration

	mu   sync.Mutex
	last *Run
}

// Run describes the most recent scheduled pass.
type Run struct {
	StartedAt time.Time       `json:"started_at"`
	Report    deadline.Report `json:"report"`
	Skipped   bool            `json:"skipped"`
	Error     string          `json:"error,omitempty"`
}

func New(loc *time.Location, reconciler Reconciler, fileLock *lock.FileLock, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		reconciler: reconciler,
		lock:       fileLock,
		logger:     log,
		timeout:    5 * time.Minute,
	}
}

// ScheduleReconcile registers the reconcile pass every interval.
func (s *Scheduler) ScheduleReconcile(interval time.Duration) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) })
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running pass to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce performs one reconcile pass under the file lock. A pass already
// running in another process makes this one a skip.
func (s *Scheduler) RunOnce(ctx context.Context) Run {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	run := Run{StartedAt: time.Now()}
	err := s.lock.Do(ctx, 0, func(ctx context.Context) error {
		report, err := s.reconciler.Reconcile(ctx)
		run.Report = report
		return err
	})

	switch {
	case errors.Is(err, lock.ErrLocked):
		run.Skipped = true
		s.logger.Info("Reconcile already running elsewhere, skipping", "lock", s.lock.Path())
	case err != nil:
		run.Error = err.Error()
		s.logger.Error("Scheduled reconcile failed", "error", err)
	}

	s.mu.Lock()
	s.last = &run
	s.mu.Unlock()
	return run
}

// Last returns the most recent pass, if any.
func (s *Scheduler) Last() (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Run{}, false
	}
	return *s.last, true
}

package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// OverdueScanScheduler periodically submits overdue scan tasks to a runner.
// It replaces an external cron dependency: the interval comes from
// configuration and the first scan runs immediately on start.
type OverdueScanScheduler struct {
	factory    *OverdueScanTaskFactory
	runner     *TaskRunner
	interval   time.Duration
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewOverdueScanScheduler creates a scheduler that submits a scan every
// interval.
func NewOverdueScanScheduler(
	factory *OverdueScanTaskFactory,
	runner *TaskRunner,
	interval time.Duration,
	logger *slog.Logger,
) *OverdueScanScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &OverdueScanScheduler{
		factory:    factory,
		runner:     runner,
		interval:   interval,
		logger:     logger.With("component", "overdue_scan_scheduler"),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start begins the scheduling loop.
func (s *OverdueScanScheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop halts the scheduling loop and waits for it to exit.
func (s *OverdueScanScheduler) Stop() {
	s.cancelFunc()
	s.wg.Wait()
}

func (s *OverdueScanScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.submitScan()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.submitScan()
		}
	}
}

func (s *OverdueScanScheduler) submitScan() {
	scan, err := s.factory.CreateTask(time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to create overdue scan task", "error", err)
		return
	}

	if err := s.runner.Submit(s.ctx, scan); err != nil {
		s.logger.Error("failed to submit overdue scan task",
			"task_id", scan.ID(),
			"error", err)
		return
	}

	s.logger.Debug("overdue scan submitted", "task_id", scan.ID())
}

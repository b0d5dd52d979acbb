package task

import (
	"log/slog"
	"time"
)

// OverdueScanTaskFactory creates OverdueScanTask instances with their
// dependencies pre-wired.
type OverdueScanTaskFactory struct {
	assessor FineAssessor
	logger   *slog.Logger
}

// NewOverdueScanTaskFactory creates a factory bound to the given assessor.
func NewOverdueScanTaskFactory(assessor FineAssessor, logger *slog.Logger) *OverdueScanTaskFactory {
	return &OverdueScanTaskFactory{
		assessor: assessor,
		logger:   logger,
	}
}

// CreateTask builds a new overdue scan task scheduled for the given time.
func (f *OverdueScanTaskFactory) CreateTask(scheduledAt time.Time) (*OverdueScanTask, error) {
	return NewOverdueScanTask(scheduledAt, f.assessor, f.logger)
}

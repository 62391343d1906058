package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultLogInterval is how often LogReporter writes a line.
const DefaultLogInterval = 2 * time.Second

// LogReporter writes the tracker's progress to a logger at a fixed interval.
type LogReporter struct {
	tracker  *Tracker
	logger   *log.Logger
	clock    quartz.Clock
	interval time.Duration
}

// NewLogReporter creates a reporter; a non-positive interval uses DefaultLogInterval.
func NewLogReporter(tracker *Tracker, logger *log.Logger, clock quartz.Clock, interval time.Duration) *LogReporter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if interval <= 0 {
		interval = DefaultLogInterval
	}
	return &LogReporter{tracker: tracker, logger: logger, clock: clock, interval: interval}
}

// Start begins logging until ctx is done. The ticker is registered before
// Start returns.
func (r *LogReporter) Start(ctx context.Context) quartz.Waiter {
	return r.clock.TickerFunc(ctx, r.interval, func() error {
		r.Log()
		return nil
	}, "progress")
}

// Log writes one progress line.
func (r *LogReporter) Log() {
	s := r.tracker.Snapshot()
	r.logger.Info("Progress",
		"done", s.Done,
		"total", s.Total,
		"percent", fmt.Sprintf("%.0f%%", s.Fraction()*100),
		"elapsed", s.Elapsed.Round(time.Second),
		"eta", s.ETA().Round(time.Second))
}

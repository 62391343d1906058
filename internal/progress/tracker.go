// Package progress reports how far a simulation run has got, either as
// periodic log lines or as an interactive progress bar.
package progress

import (
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/wcowley99/utx/poker"
)

// Tracker counts finished starting hands. It is safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	clock quartz.Clock
	start time.Time
	total int
	done  int
	last  poker.StartingHand
}

// NewTracker creates a tracker expecting total classes.
func NewTracker(total int, clock quartz.Clock) *Tracker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Tracker{clock: clock, start: clock.Now(), total: total}
}

// ClassDone records one finished class.
func (t *Tracker) ClassDone(class poker.StartingHand) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	t.last = class
}

// Snapshot is a point-in-time view of a tracker.
type Snapshot struct {
	Done    int
	Total   int
	Last    poker.StartingHand
	Elapsed time.Duration
}

// Snapshot returns the current progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Done:    t.done,
		Total:   t.total,
		Last:    t.last,
		Elapsed: t.clock.Since(t.start),
	}
}

// Fraction returns the completed share in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Total <= 0 {
		return 1
	}
	return min(1, float64(s.Done)/float64(s.Total))
}

// Finished reports whether every class is done.
func (s Snapshot) Finished() bool {
	return s.Done >= s.Total
}

// ETA extrapolates the remaining time from the average time per class so far.
// It is zero until the first class finishes.
func (s Snapshot) ETA() time.Duration {
	if s.Done == 0 || s.Finished() {
		return 0
	}
	perClass := s.Elapsed / time.Duration(s.Done)
	return perClass * time.Duration(s.Total-s.Done)
}

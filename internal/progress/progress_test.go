package progress

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcowley99/utx/poker"
)

func TestTrackerSnapshot(t *testing.T) {
	clock := quartz.NewMock(t)
	tracker := NewTracker(4, clock)

	s := tracker.Snapshot()
	assert.Equal(t, 0, s.Done)
	assert.Zero(t, s.Fraction())
	assert.Zero(t, s.ETA())
	assert.False(t, s.Finished())

	clock.Advance(10 * time.Second)
	tracker.ClassDone(poker.StartingHand{High: poker.Ace, Low: poker.Ace})

	s = tracker.Snapshot()
	assert.Equal(t, 1, s.Done)
	assert.Equal(t, "AA", s.Last.String())
	assert.Equal(t, 10*time.Second, s.Elapsed)
	assert.InDelta(t, 0.25, s.Fraction(), 1e-9)
	assert.Equal(t, 30*time.Second, s.ETA())

	for range 3 {
		tracker.ClassDone(poker.StartingHand{High: poker.King, Low: poker.King})
	}
	s = tracker.Snapshot()
	assert.True(t, s.Finished())
	assert.Equal(t, 1.0, s.Fraction())
	assert.Zero(t, s.ETA())
}

func TestLogReporterTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := quartz.NewMock(t)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	tracker := NewTracker(2, clock)
	reporter := NewLogReporter(tracker, logger, clock, time.Second)
	reporter.Start(ctx)

	tracker.ClassDone(poker.StartingHand{High: poker.Ace, Low: poker.King, Suited: true})
	clock.Advance(time.Second).MustWait(ctx)

	out := buf.String()
	require.Contains(t, out, "Progress")
	assert.Contains(t, out, "done=1")
	assert.Contains(t, out, "total=2")
	assert.Contains(t, out, "percent=50%")
}

func TestNewLogReporterDefaultsInterval(t *testing.T) {
	r := NewLogReporter(NewTracker(1, nil), log.New(&bytes.Buffer{}), nil, 0)
	assert.Equal(t, DefaultLogInterval, r.interval)
}

func TestModelUpdates(t *testing.T) {
	clock := quartz.NewMock(t)
	tracker := NewTracker(3, clock)
	m := NewModel(tracker)
	require.NotNil(t, m.Init())

	tracker.ClassDone(poker.StartingHand{High: poker.Seven, Low: poker.Two})
	updated, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticks keep refreshing until done")
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "1/3 classes")
	assert.Contains(t, view, "last 72o")

	updated, cmd = m.Update(DoneMsg{})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.False(t, m.Interrupted())
	assert.NotContains(t, m.View(), "ctrl+c")
}

func TestModelInterrupt(t *testing.T) {
	m := NewModel(NewTracker(3, quartz.NewMock(t)))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, updated.(Model).Interrupted())

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, 26, updated.(Model).bar.Width)
}

// Package report picks the best line for every starting hand and renders
// the results.
package report

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wcowley99/utx/internal/simulator"
	"github.com/wcowley99/utx/internal/statistics"
	"github.com/wcowley99/utx/poker"
)

// Play is the recommended line for a starting hand.
type Play int

const (
	Fold Play = iota
	BetRiver
	BetFlop
	Maxbet
)

// String returns the label used in reports
func (p Play) String() string {
	switch p {
	case Fold:
		return "fold"
	case BetRiver:
		return "bet on river"
	case BetFlop:
		return "bet on flop"
	case Maxbet:
		return "maxbet hand"
	default:
		return "unknown"
	}
}

// MarshalText encodes the play as its label.
func (p Play) MarshalText() ([]byte, error) {
	if p < Fold || p > Maxbet {
		return nil, fmt.Errorf("unknown play %d", int(p))
	}
	return []byte(p.String()), nil
}

// Row is the outcome for one starting hand.
type Row struct {
	Class  poker.StartingHand
	Play   Play
	EV     float64
	Trials int

	// Per-line means.
	Maxbet float64
	Flop   float64
	River  float64

	// 95% confidence interval of the selected line; a fold has no spread.
	CILow  float64
	CIHigh float64
}

// Report is the full result of a run.
type Report struct {
	RunID  string
	Seed   int64
	Trials int
	Ranker string
	Rows   []Row
	// Complete is set when every starting hand was simulated; only then is
	// TotalEV meaningful.
	Complete bool
	TotalEV  float64
}

// Meta describes the run that produced the accumulators.
type Meta struct {
	Seed   int64
	Trials int
	Ranker string
}

// Select compares the fold, river, flop and maxbet lines in that order. A
// later line replaces the current choice only when its mean is strictly
// greater.
func Select(acc simulator.Accumulator) Row {
	row := Row{
		Class:  acc.Class,
		Play:   Fold,
		EV:     simulator.FoldLoss,
		Trials: acc.Trials,
		Maxbet: acc.Maxbet.Mean(),
		Flop:   acc.Flop.Mean(),
		River:  acc.River.Mean(),
		CILow:  simulator.FoldLoss,
		CIHigh: simulator.FoldLoss,
	}

	for _, line := range []struct {
		play    Play
		summary statistics.Summary
	}{
		{BetRiver, acc.River},
		{BetFlop, acc.Flop},
		{Maxbet, acc.Maxbet},
	} {
		if mean := line.summary.Mean(); mean > row.EV {
			row.Play = line.play
			row.EV = mean
			row.CILow, row.CIHigh = line.summary.ConfidenceInterval95()
		}
	}
	return row
}

// Aggregate selects a line for every accumulator and, when all starting
// hands are present, weights them into the overall EV per hand dealt.
func Aggregate(meta Meta, accs []simulator.Accumulator) (*Report, error) {
	if len(accs) == 0 {
		return nil, errors.New("no results to report")
	}

	r := &Report{
		RunID:  uuid.NewString(),
		Seed:   meta.Seed,
		Trials: meta.Trials,
		Ranker: meta.Ranker,
		Rows:   make([]Row, 0, len(accs)),
	}

	seen := make(map[poker.StartingHand]bool, len(accs))
	weights, weighted := 0, 0.0
	for _, acc := range accs {
		if acc.Class.Index() < 0 {
			return nil, fmt.Errorf("%s is not a starting hand", acc.Class)
		}
		if seen[acc.Class] {
			return nil, fmt.Errorf("%s reported twice", acc.Class)
		}
		if acc.Trials <= 0 {
			return nil, fmt.Errorf("%s has no trials", acc.Class)
		}
		seen[acc.Class] = true

		row := Select(acc)
		r.Rows = append(r.Rows, row)
		weights += acc.Class.Weight()
		weighted += row.EV * float64(acc.Class.Weight())
	}

	if len(seen) == poker.NumStartingHands {
		if weights != poker.NumHoleCombos {
			return nil, fmt.Errorf("starting hand weights sum to %d, want %d", weights, poker.NumHoleCombos)
		}
		r.Complete = true
		r.TotalEV = weighted / poker.NumHoleCombos
	}
	return r, nil
}

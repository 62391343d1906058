package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/wcowley99/utx/internal/payout"
	"github.com/wcowley99/utx/internal/randutil"
	"github.com/wcowley99/utx/internal/statistics"
	"github.com/wcowley99/utx/internal/strategy"
	"github.com/wcowley99/utx/poker"
)

const (
	// Ante is the ante (and blind) stake for every trial.
	Ante = 1.0
	// MaxBet is the preflop raise of the always-maxbet line.
	MaxBet = 4 * Ante
	// FlopBet is the bet made after the flop.
	FlopBet = 2 * Ante
	// RiverBet is the bet made after the river.
	RiverBet = 1 * Ante
	// FoldLoss is the result of folding at the river: ante and blind are lost.
	FoldLoss = -2 * Ante

	// DefaultTrials is the number of trials per starting hand.
	DefaultTrials = 1000

	cancelCheckInterval = 256
)

// Progress is told about every starting hand that finishes.
type Progress interface {
	ClassDone(class poker.StartingHand)
}

// Config holds configuration for running simulations
type Config struct {
	Trials  int
	Seed    int64
	Workers int                  // 0 means GOMAXPROCS
	Classes []poker.StartingHand // nil means all 169
	Rules   *payout.Rules
	Policy  strategy.Policy // nil means pair-or-better under Rules
	Logger  *log.Logger
	// Progress is optional.
	Progress Progress
	Clock    quartz.Clock
}

// Accumulator holds the per-line outcomes for one starting hand. Each line
// records exactly one observation per trial, zero when the trial did not
// take that line.
type Accumulator struct {
	Class  poker.StartingHand
	Trials int
	Maxbet statistics.Summary
	Flop   statistics.Summary
	River  statistics.Summary
}

// Simulator runs Monte Carlo trials for a set of starting hands.
type Simulator struct {
	config  Config
	classes []poker.StartingHand
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rules == nil {
		return nil, errors.New("simulator: rules are required")
	}
	if config.Trials <= 0 {
		return nil, fmt.Errorf("simulator: trials must be positive, got %d", config.Trials)
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("simulator: workers must not be negative, got %d", config.Workers)
	}
	if config.Workers == 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Policy == nil {
		config.Policy = strategy.NewPairOrBetter(config.Rules.Ranker(), config.Rules.Thresholds().WorstPair)
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	classes := config.Classes
	if len(classes) == 0 {
		classes = poker.AllStartingHands()
	}
	seen := make(map[poker.StartingHand]bool, len(classes))
	for _, class := range classes {
		if class.Index() < 0 {
			return nil, fmt.Errorf("simulator: %s is not a starting hand", class)
		}
		if seen[class] {
			return nil, fmt.Errorf("simulator: %s listed twice", class)
		}
		seen[class] = true
	}

	return &Simulator{config: config, classes: classes}, nil
}

// Classes returns the starting hands the simulator will run, in report order.
func (s *Simulator) Classes() []poker.StartingHand {
	return append([]poker.StartingHand(nil), s.classes...)
}

// Run simulates every configured starting hand and returns one accumulator
// per class in the order of Classes. Each class draws from its own random
// stream keyed by the seed and the class, so the result does not depend on
// the number of workers or on which other classes are run.
func (s *Simulator) Run(ctx context.Context) ([]Accumulator, error) {
	logger := s.config.Logger
	start := s.config.Clock.Now()
	logger.Info("Starting simulation",
		"classes", len(s.classes),
		"trials", s.config.Trials,
		"workers", s.config.Workers,
		"seed", s.config.Seed,
		"ranker", s.config.Rules.Ranker().Name())

	results := make([]Accumulator, len(s.classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, class := range s.classes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			acc, err := s.runClass(gctx, class)
			if err != nil {
				return err
			}
			results[i] = acc
			logger.Debug("Class finished", "class", class, "maxbet", acc.Maxbet.Mean())
			if s.config.Progress != nil {
				s.config.Progress.ClassDone(class)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled parent may stop scheduling before any worker notices.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, acc := range results {
		for _, line := range []statistics.Summary{acc.Maxbet, acc.Flop, acc.River} {
			if err := line.Validate(); err != nil {
				return nil, fmt.Errorf("class %s: statistics validation failed: %w", acc.Class, err)
			}
		}
	}

	logger.Info("Simulation complete",
		"classes", len(results),
		"duration", s.config.Clock.Since(start).Round(time.Millisecond))
	return results, nil
}

func (s *Simulator) runClass(ctx context.Context, class poker.StartingHand) (Accumulator, error) {
	rng := randutil.Stream(s.config.Seed, uint64(class.Index()))
	hole := class.Hand()
	deck := poker.NewDeckWithout(rng, hole)

	acc := Accumulator{Class: class}
	for trial := 0; trial < s.config.Trials; trial++ {
		if trial%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Accumulator{}, err
			}
		}
		if err := s.playTrial(deck, hole, &acc); err != nil {
			return Accumulator{}, fmt.Errorf("class %s trial %d: %w", class, trial+1, err)
		}
	}
	return acc, nil
}

// playTrial deals one dealer hand and board, then settles the maxbet line
// and whichever of the flop, river or fold lines the policy takes.
func (s *Simulator) playTrial(deck *poker.Deck, hole poker.Hand, acc *Accumulator) error {
	rules, policy := s.config.Rules, s.config.Policy

	deck.Shuffle()
	dealer, err := deck.Deal(2)
	if err != nil {
		return fmt.Errorf("deal dealer: %w", err)
	}
	flop, err := deck.Deal(3)
	if err != nil {
		return fmt.Errorf("deal flop: %w", err)
	}
	turnRiver, err := deck.Deal(2)
	if err != nil {
		return fmt.Errorf("deal river: %w", err)
	}
	board := flop | turnRiver

	maxbet, err := rules.Settle(hole, dealer, board, Ante, MaxBet)
	if err != nil {
		return fmt.Errorf("settle maxbet: %w", err)
	}

	var flopResult, riverResult float64
	betFlop, err := policy.ShouldBetFlop(hole, flop)
	if err != nil {
		return fmt.Errorf("flop decision: %w", err)
	}
	if betFlop {
		if flopResult, err = rules.Settle(hole, dealer, board, Ante, FlopBet); err != nil {
			return fmt.Errorf("settle flop: %w", err)
		}
	} else {
		betRiver, err := policy.ShouldBetRiver(hole, board)
		if err != nil {
			return fmt.Errorf("river decision: %w", err)
		}
		if betRiver {
			if riverResult, err = rules.Settle(hole, dealer, board, Ante, RiverBet); err != nil {
				return fmt.Errorf("settle river: %w", err)
			}
			// A river bet is also what the flop line ends up doing when it checks.
			flopResult = riverResult
		} else {
			flopResult = FoldLoss
		}
	}

	acc.Trials++
	acc.Maxbet.Add(maxbet)
	acc.Flop.Add(flopResult)
	acc.River.Add(riverResult)
	return nil
}

// Package payout implements the showdown settlement of the ante, blind and
// play bet against a single dealer hand.
package payout

import (
	"fmt"

	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/poker"
)

// Paytable holds the blind multipliers per dealer hand category.
type Paytable struct {
	RoyalFlush    float64
	StraightFlush float64
	FourOfAKind   float64
	FullHouse     float64
	Flush         float64
	Straight      float64
}

// DefaultPaytable pays 50/10/3/1.5/1 from straight flush down to straight.
// A royal flush pays as a straight flush.
func DefaultPaytable() Paytable {
	return Paytable{
		RoyalFlush:    50,
		StraightFlush: 50,
		FourOfAKind:   10,
		FullHouse:     3,
		Flush:         1.5,
		Straight:      1,
	}
}

// Validate rejects negative multipliers.
func (p Paytable) Validate() error {
	for name, v := range map[string]float64{
		"royal_flush":    p.RoyalFlush,
		"straight_flush": p.StraightFlush,
		"four_of_a_kind": p.FourOfAKind,
		"full_house":     p.FullHouse,
		"flush":          p.Flush,
		"straight":       p.Straight,
	} {
		if v < 0 {
			return fmt.Errorf("paytable %s: multiplier must not be negative, got %g", name, v)
		}
	}
	return nil
}

// Max is the largest multiplier in the table.
func (p Paytable) Max() float64 {
	return max(p.RoyalFlush, p.StraightFlush, p.FourOfAKind, p.FullHouse, p.Flush, p.Straight)
}

// Thresholds are the ranks of the weakest hand in each paying category,
// as numbered by one particular Ranker.
type Thresholds struct {
	RoyalFlush         ranker.Rank
	WorstStraightFlush ranker.Rank
	WorstFourOfAKind   ranker.Rank
	WorstFullHouse     ranker.Rank
	WorstFlush         ranker.Rank
	WorstStraight      ranker.Rank
	WorstPair          ranker.Rank
}

var thresholdHands = []struct {
	name  string
	cards string
	field func(*Thresholds) *ranker.Rank
}{
	{"royal flush", "Ad Kd Qd Jd Td", func(t *Thresholds) *ranker.Rank { return &t.RoyalFlush }},
	{"worst straight flush", "5d 4d 3d 2d Ad", func(t *Thresholds) *ranker.Rank { return &t.WorstStraightFlush }},
	{"worst four of a kind", "2c 2d 2h 2s 3c", func(t *Thresholds) *ranker.Rank { return &t.WorstFourOfAKind }},
	{"worst full house", "2s 2d 2h 3s 3d", func(t *Thresholds) *ranker.Rank { return &t.WorstFullHouse }},
	{"worst flush", "7s 5s 4s 3s 2s", func(t *Thresholds) *ranker.Rank { return &t.WorstFlush }},
	{"worst straight", "5d 4h 3c 2s Ad", func(t *Thresholds) *ranker.Rank { return &t.WorstStraight }},
	{"worst pair", "2d 2s 5d 4h 3c", func(t *Thresholds) *ranker.Rank { return &t.WorstPair }},
}

// NewThresholds ranks the weakest hand of each category with r and checks
// that r orders the categories correctly.
func NewThresholds(r ranker.Ranker) (Thresholds, error) {
	var t Thresholds
	prev := ranker.Rank(0)
	for i, th := range thresholdHands {
		rank, err := r.Rank(poker.MustParseHand(th.cards))
		if err != nil {
			return Thresholds{}, fmt.Errorf("rank %s: %w", th.name, err)
		}
		if i > 0 && rank <= prev {
			return Thresholds{}, fmt.Errorf("ranker %s orders %s (%d) at or above %s (%d)",
				r.Name(), th.name, rank, thresholdHands[i-1].name, prev)
		}
		*th.field(&t) = rank
		prev = rank
	}
	return t, nil
}

// Rules settles hands for one ranker and paytable.
type Rules struct {
	ranker     ranker.Ranker
	thresholds Thresholds
	paytable   Paytable
}

// NewRules derives the thresholds for r and validates the paytable.
func NewRules(r ranker.Ranker, paytable Paytable) (*Rules, error) {
	if err := paytable.Validate(); err != nil {
		return nil, err
	}
	t, err := NewThresholds(r)
	if err != nil {
		return nil, err
	}
	return &Rules{ranker: r, thresholds: t, paytable: paytable}, nil
}

// Ranker returns the ranker the thresholds were derived from.
func (r *Rules) Ranker() ranker.Ranker { return r.ranker }

// Thresholds returns the category thresholds.
func (r *Rules) Thresholds() Thresholds { return r.thresholds }

// Paytable returns the blind paytable.
func (r *Rules) Paytable() Paytable { return r.paytable }

// Qualifies reports whether a dealer hand of this rank is at least one pair.
func (r *Rules) Qualifies(rank ranker.Rank) bool {
	return rank <= r.thresholds.WorstPair
}

// BlindMultiplier returns the blind bonus for a hand of this rank. Tiers are
// tested from strongest to weakest and each bound is inclusive, so the worst
// hand of a category still pays that category.
func (r *Rules) BlindMultiplier(rank ranker.Rank) float64 {
	t, p := r.thresholds, r.paytable
	switch {
	case rank <= t.RoyalFlush:
		return p.RoyalFlush
	case rank <= t.WorstStraightFlush:
		return p.StraightFlush
	case rank <= t.WorstFourOfAKind:
		return p.FourOfAKind
	case rank <= t.WorstFullHouse:
		return p.FullHouse
	case rank <= t.WorstFlush:
		return p.Flush
	case rank <= t.WorstStraight:
		return p.Straight
	default:
		return 0
	}
}

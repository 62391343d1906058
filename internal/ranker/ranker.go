// Package ranker defines the hand-ranking contract consumed by the payout
// rules and the betting decisions, with interchangeable implementations.
package ranker

import (
	"fmt"
	"sort"

	"github.com/wcowley99/utx/poker"
)

// Rank orders poker hands: a smaller value is a strictly stronger hand and
// equal values are hands of identical category and kickers.
type Rank int

// Ranker ranks the best five-card hand within 5 or 7 distinct cards.
// Any other card count yields an error wrapping poker.ErrInvalidCardCount.
type Ranker interface {
	Name() string
	Rank(hand poker.Hand) (Rank, error)
}

// Default is the name of the ranker used when none is configured.
const Default = "native"

var registry = map[string]func() Ranker{
	"native":     func() Ranker { return Native{} },
	"paulhankin": func() Ranker { return PaulHankin{} },
}

// New returns the ranker registered under name.
func New(name string) (Ranker, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown ranker %q (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered rankers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Native ranks hands with the bitmask evaluator in package poker.
type Native struct{}

// Name implements Ranker.
func (Native) Name() string { return "native" }

// Rank implements Ranker.
func (Native) Rank(hand poker.Hand) (Rank, error) {
	r, err := poker.Evaluate(hand)
	if err != nil {
		return 0, err
	}
	return Rank(r), nil
}

package poker

import (
	"fmt"
	"strings"
)

// StartingHandKind partitions the 169 starting hands.
type StartingHandKind uint8

const (
	PairHand StartingHandKind = iota
	SuitedHand
	OffsuitHand
)

// String returns the kind name
func (k StartingHandKind) String() string {
	switch k {
	case PairHand:
		return "pair"
	case SuitedHand:
		return "suited"
	case OffsuitHand:
		return "offsuit"
	default:
		return "unknown"
	}
}

const (
	// NumStartingHands is the number of strategically distinct two-card hands.
	NumStartingHands = 169
	// NumHoleCombos is the number of concrete two-card hands in a 52-card deck.
	NumHoleCombos = 1326
)

// StartingHand is a suit-abstracted two-card holding such as AA, AKs or 72o.
// High is never below Low; pairs are never suited.
type StartingHand struct {
	High   uint8
	Low    uint8
	Suited bool
}

// Kind reports whether the hand is a pair, suited or offsuit.
func (sh StartingHand) Kind() StartingHandKind {
	switch {
	case sh.High == sh.Low:
		return PairHand
	case sh.Suited:
		return SuitedHand
	default:
		return OffsuitHand
	}
}

// Weight is the number of concrete two-card combinations in the class.
func (sh StartingHand) Weight() int {
	switch sh.Kind() {
	case PairHand:
		return 6
	case SuitedHand:
		return 4
	default:
		return 12
	}
}

// Cards returns the canonical representative used for simulation.
//
// Suits carry no value before the board is dealt, so one representative
// stands for the whole class: pairs and offsuit hands put the high card in
// diamonds and the low card in hearts, suited hands put both in diamonds.
func (sh StartingHand) Cards() (Card, Card) {
	if sh.Suited {
		return NewCard(sh.High, Diamonds), NewCard(sh.Low, Diamonds)
	}
	return NewCard(sh.High, Diamonds), NewCard(sh.Low, Hearts)
}

// Hand returns the canonical representative as a Hand.
func (sh StartingHand) Hand() Hand {
	c1, c2 := sh.Cards()
	return NewHand(c1, c2)
}

// Index is the position of the class in AllStartingHands, or -1 for a
// value that is not one of the 169 classes.
func (sh StartingHand) Index() int {
	if i, ok := startingHandIndex[sh]; ok {
		return i
	}
	return -1
}

// String renders the class in the usual shorthand ("AA", "AKs", "72o").
func (sh StartingHand) String() string {
	s := string(rankChars[sh.High]) + string(rankChars[sh.Low])
	switch sh.Kind() {
	case SuitedHand:
		s += "s"
	case OffsuitHand:
		s += "o"
	}
	return s
}

// ClassOf maps two distinct concrete cards to their starting hand class.
func ClassOf(c1, c2 Card) (StartingHand, error) {
	if c1 == c2 {
		return StartingHand{}, fmt.Errorf("class of %s %s: %w", c1, c2, ErrCardCollision)
	}
	if c1.Index() > 51 || c2.Index() > 51 {
		return StartingHand{}, fmt.Errorf("class of %s %s: %w", c1, c2, ErrInvalidCard)
	}
	high, low := c1.Rank(), c2.Rank()
	if low > high {
		high, low = low, high
	}
	return StartingHand{
		High:   high,
		Low:    low,
		Suited: high != low && c1.Suit() == c2.Suit(),
	}, nil
}

// ParseStartingHand parses the shorthand form ("AA", "AKs", "kao").
// Two distinct ranks without a suffix are rejected.
func ParseStartingHand(s string) (StartingHand, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return StartingHand{}, fmt.Errorf("invalid starting hand %q", s)
	}
	r1 := strings.IndexByte(rankChars, upper(s[0]))
	r2 := strings.IndexByte(rankChars, upper(s[1]))
	if r1 < 0 || r2 < 0 {
		return StartingHand{}, fmt.Errorf("invalid starting hand %q: unknown rank", s)
	}
	sh := StartingHand{High: uint8(max(r1, r2)), Low: uint8(min(r1, r2))}

	suffix := byte(0)
	if len(s) == 3 {
		suffix = lower(s[2])
	}
	switch {
	case sh.High == sh.Low && suffix == 0:
	case sh.High == sh.Low:
		return StartingHand{}, fmt.Errorf("invalid starting hand %q: pairs take no suffix", s)
	case suffix == 's':
		sh.Suited = true
	case suffix == 'o':
	default:
		return StartingHand{}, fmt.Errorf("invalid starting hand %q: want s or o suffix", s)
	}
	return sh, nil
}

var allStartingHands, startingHandIndex = func() ([]StartingHand, map[StartingHand]int) {
	hands := make([]StartingHand, 0, NumStartingHands)
	for high := int(Ace); high >= int(Two); high-- {
		hands = append(hands, StartingHand{High: uint8(high), Low: uint8(high)})
		for low := high - 1; low >= int(Two); low-- {
			hands = append(hands,
				StartingHand{High: uint8(high), Low: uint8(low), Suited: true},
				StartingHand{High: uint8(high), Low: uint8(low)},
			)
		}
	}
	index := make(map[StartingHand]int, len(hands))
	for i, sh := range hands {
		index[sh] = i
	}
	return hands, index
}()

// AllStartingHands returns the 169 classes: for each high rank from ace down,
// the pair followed by suited then offsuit hands with descending low rank.
func AllStartingHands() []StartingHand {
	return append([]StartingHand(nil), allStartingHands...)
}

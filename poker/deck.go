package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is the set of cards still available to deal, in shuffled order.
type Deck struct {
	cards [52]Card
	size  int
	next  int
	dealt Hand // every card in play: excluded cards plus cards dealt so far
	rng   *rand.Rand
}

// NewDeck creates a shuffled 52-card deck with an explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckWithout(rng, 0)
}

// NewDeckWithout creates a shuffled deck holding every card not in exclude.
// Excluded cards count as already in play.
func NewDeckWithout(rng *rand.Rand, exclude Hand) *Deck {
	d := &Deck{rng: rng, dealt: exclude}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			c := NewCard(rank, suit)
			if exclude.HasCard(c) {
				continue
			}
			d.cards[d.size] = c
			d.size++
		}
	}
	d.Shuffle()
	return d
}

// Shuffle restores every dealt card and shuffles using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := d.next - 1; i >= 0; i-- {
		d.dealt &^= Hand(d.cards[i])
	}
	d.next = 0
	for i := d.size - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck as a Hand.
func (d *Deck) Deal(n int) (Hand, error) {
	if d.next+n > d.size {
		return 0, fmt.Errorf("deal %d cards: only %d remaining", n, d.CardsRemaining())
	}
	var h Hand
	for _, c := range d.cards[d.next : d.next+n] {
		if d.dealt.HasCard(c) {
			return 0, fmt.Errorf("deal %s: %w", c, ErrCardCollision)
		}
		d.dealt.AddCard(c)
		h.AddCard(c)
	}
	d.next += n
	return h, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return d.size - d.next
}

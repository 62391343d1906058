package ranker

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/wcowley99/utx/poker"
)

// PaulHankin ranks hands with github.com/paulhankin/poker. That library
// scores stronger hands higher, so scores are negated to fit the Rank order.
type PaulHankin struct{}

// Name implements Ranker.
func (PaulHankin) Name() string { return "paulhankin" }

// Rank implements Ranker.
func (PaulHankin) Rank(hand poker.Hand) (Rank, error) {
	cards := hand.Cards()
	switch len(cards) {
	case 5:
		var five [5]ph.Card
		if err := convertCards(five[:], cards); err != nil {
			return 0, err
		}
		return Rank(-int(ph.Eval5(&five))), nil
	case 7:
		var seven [7]ph.Card
		if err := convertCards(seven[:], cards); err != nil {
			return 0, err
		}
		return Rank(-int(ph.Eval7(&seven))), nil
	default:
		return 0, fmt.Errorf("paulhankin rank %d cards: %w", len(cards), poker.ErrInvalidCardCount)
	}
}

var phSuits = [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}

func convertCards(dst []ph.Card, src []poker.Card) error {
	for i, c := range src {
		// The library numbers ranks 1 (ace) to 13 (king).
		rank := ph.Rank(c.Rank() + 2)
		if c.Rank() == poker.Ace {
			rank = ph.Rank(1)
		}
		card, err := ph.MakeCard(phSuits[c.Suit()], rank)
		if err != nil {
			return fmt.Errorf("convert %s: %w", c, err)
		}
		dst[i] = card
	}
	return nil
}

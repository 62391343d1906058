// Package strategy holds the post-flop betting decisions compared against
// the always-maxbet line.
package strategy

import (
	"fmt"

	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/poker"
)

// Policy decides whether to make the flop bet and, failing that, the river bet.
type Policy interface {
	ShouldBetFlop(hole, flop poker.Hand) (bool, error)
	ShouldBetRiver(hole, board poker.Hand) (bool, error)
}

// PairOrBetter bets whenever the player's cards make at least one pair.
type PairOrBetter struct {
	ranker    ranker.Ranker
	worstPair ranker.Rank
}

// NewPairOrBetter builds the policy from a ranker and that ranker's
// worst one-pair rank.
func NewPairOrBetter(r ranker.Ranker, worstPair ranker.Rank) *PairOrBetter {
	return &PairOrBetter{ranker: r, worstPair: worstPair}
}

// ShouldBetFlop ranks the two hole cards with the three flop cards.
func (p *PairOrBetter) ShouldBetFlop(hole, flop poker.Hand) (bool, error) {
	if flop.CountCards() != 3 {
		return false, fmt.Errorf("flop decision needs 3 board cards, got %d: %w", flop.CountCards(), poker.ErrInvalidCardCount)
	}
	return p.atLeastPair(hole, flop)
}

// ShouldBetRiver ranks the two hole cards with all five board cards.
func (p *PairOrBetter) ShouldBetRiver(hole, board poker.Hand) (bool, error) {
	if board.CountCards() != 5 {
		return false, fmt.Errorf("river decision needs 5 board cards, got %d: %w", board.CountCards(), poker.ErrInvalidCardCount)
	}
	return p.atLeastPair(hole, board)
}

func (p *PairOrBetter) atLeastPair(hole, board poker.Hand) (bool, error) {
	if hole.Overlaps(board) {
		return false, fmt.Errorf("hole %s on board %s: %w", hole, board, poker.ErrCardCollision)
	}
	rank, err := p.ranker.Rank(hole | board)
	if err != nil {
		return false, err
	}
	return rank <= p.worstPair, nil
}

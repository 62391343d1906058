package payout

import (
	"fmt"

	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/poker"
)

// Settle returns the player's net result for one showdown. The blind stake
// always equals the ante.
//
//   - dealer stronger: ante, blind and bet are lost
//   - tie: everything pushes
//   - player stronger, dealer below a pair: bet wins 1:1, ante and blind push
//   - player stronger, dealer qualifies: ante and bet win 1:1, blind pays
//     BlindMultiplier of the dealer's hand
func (r *Rules) Settle(player, dealer, board poker.Hand, ante, bet float64) (float64, error) {
	if err := checkShowdown(player, dealer, board); err != nil {
		return 0, err
	}

	playerRank, err := r.ranker.Rank(player | board)
	if err != nil {
		return 0, fmt.Errorf("rank player: %w", err)
	}
	dealerRank, err := r.ranker.Rank(dealer | board)
	if err != nil {
		return 0, fmt.Errorf("rank dealer: %w", err)
	}

	return r.settleRanks(playerRank, dealerRank, ante, bet), nil
}

func (r *Rules) settleRanks(playerRank, dealerRank ranker.Rank, ante, bet float64) float64 {
	switch {
	case dealerRank < playerRank:
		return -(2*ante + bet)
	case dealerRank == playerRank:
		return 0
	case !r.Qualifies(dealerRank):
		return bet
	default:
		return ante + bet + ante*r.BlindMultiplier(dealerRank)
	}
}

func checkShowdown(player, dealer, board poker.Hand) error {
	if player.CountCards() != 2 || dealer.CountCards() != 2 || board.CountCards() != 5 {
		return fmt.Errorf("showdown needs 2+2+5 cards, got %d+%d+%d: %w",
			player.CountCards(), dealer.CountCards(), board.CountCards(), poker.ErrInvalidCardCount)
	}
	if player.Overlaps(dealer) || player.Overlaps(board) || dealer.Overlaps(board) {
		return fmt.Errorf("showdown %s / %s / %s: %w", player, dealer, board, poker.ErrCardCollision)
	}
	return nil
}

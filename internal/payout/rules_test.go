package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/poker"
)

func newTestRules(t *testing.T) *Rules {
	t.Helper()
	rules, err := NewRules(ranker.Native{}, DefaultPaytable())
	require.NoError(t, err)
	return rules
}

func TestNativeThresholds(t *testing.T) {
	th := newTestRules(t).Thresholds()
	assert.Equal(t, Thresholds{
		RoyalFlush:         0,
		WorstStraightFlush: 9,
		WorstFourOfAKind:   165,
		WorstFullHouse:     321,
		WorstFlush:         1598,
		WorstStraight:      1608,
		WorstPair:          6184,
	}, th)
}

func TestThresholdsForEveryRanker(t *testing.T) {
	for _, name := range ranker.Names() {
		r, err := ranker.New(name)
		require.NoError(t, err)
		_, err = NewRules(r, DefaultPaytable())
		assert.NoError(t, err, name)
	}
}

// reversed ranks hands backwards, violating the ranker contract.
type reversed struct{ ranker.Native }

func (r reversed) Rank(h poker.Hand) (ranker.Rank, error) {
	rank, err := r.Native.Rank(h)
	return -rank, err
}

func TestNewThresholdsRejectsMisorderedRanker(t *testing.T) {
	_, err := NewThresholds(reversed{})
	assert.Error(t, err)
}

func TestQualifies(t *testing.T) {
	rules := newTestRules(t)
	th := rules.Thresholds()

	assert.True(t, rules.Qualifies(th.WorstPair))
	assert.True(t, rules.Qualifies(th.WorstPair-1))
	assert.False(t, rules.Qualifies(th.WorstPair+1))
	assert.True(t, rules.Qualifies(th.RoyalFlush))
}

func TestBlindMultiplierBoundaries(t *testing.T) {
	rules := newTestRules(t)
	th := rules.Thresholds()

	tests := []struct {
		name string
		rank ranker.Rank
		want float64
	}{
		{"royal flush", th.RoyalFlush, 50},
		{"worst straight flush", th.WorstStraightFlush, 50},
		{"best four of a kind", th.WorstStraightFlush + 1, 10},
		{"worst four of a kind", th.WorstFourOfAKind, 10},
		{"best full house", th.WorstFourOfAKind + 1, 3},
		{"worst full house", th.WorstFullHouse, 3},
		{"best flush", th.WorstFullHouse + 1, 1.5},
		{"worst flush", th.WorstFlush, 1.5},
		{"best straight", th.WorstFlush + 1, 1},
		{"worst straight", th.WorstStraight, 1},
		{"one rank weaker than the worst straight", th.WorstStraight + 1, 0},
		{"worst pair", th.WorstPair, 0},
		{"worst hand", ranker.Rank(poker.WorstHandRank), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.BlindMultiplier(tc.rank))
		})
	}
}

func TestRoyalFlushTier(t *testing.T) {
	pt := DefaultPaytable()
	pt.RoyalFlush = 500
	rules, err := NewRules(ranker.Native{}, pt)
	require.NoError(t, err)

	assert.Equal(t, 500.0, rules.BlindMultiplier(rules.Thresholds().RoyalFlush))
	assert.Equal(t, 50.0, rules.BlindMultiplier(rules.Thresholds().RoyalFlush+1))
}

func TestPaytableValidate(t *testing.T) {
	assert.NoError(t, DefaultPaytable().Validate())
	assert.Equal(t, 50.0, DefaultPaytable().Max())

	pt := DefaultPaytable()
	pt.Flush = -1
	assert.Error(t, pt.Validate())

	_, err := NewRules(ranker.Native{}, pt)
	assert.Error(t, err)
}

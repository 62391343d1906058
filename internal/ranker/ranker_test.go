package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcowley99/utx/internal/randutil"
	"github.com/wcowley99/utx/poker"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		r, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}

	_, err := New("nope")
	assert.Error(t, err)
	assert.Contains(t, Names(), Default)
}

func TestRankersRejectBadCardCounts(t *testing.T) {
	for _, name := range Names() {
		r, err := New(name)
		require.NoError(t, err)
		for _, cards := range []string{"As Kd", "As Kd Qh Jc Ts 9d"} {
			_, err := r.Rank(poker.MustParseHand(cards))
			assert.ErrorIs(t, err, poker.ErrInvalidCardCount, "%s ranking %s", name, cards)
		}
	}
}

func sign(d Rank) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// The rankers number hands differently but must agree on every comparison.
func TestRankersAgreeOnOrder(t *testing.T) {
	native, other := Native{}, PaulHankin{}
	rng := randutil.New(11)

	for i := 0; i < 2000; i++ {
		n := 7
		if i%2 == 0 {
			n = 5
		}
		deck := poker.NewDeck(rng)
		a, err := deck.Deal(n)
		require.NoError(t, err)
		b, err := deck.Deal(n)
		require.NoError(t, err)

		na, err := native.Rank(a)
		require.NoError(t, err)
		nb, err := native.Rank(b)
		require.NoError(t, err)
		pa, err := other.Rank(a)
		require.NoError(t, err)
		pb, err := other.Rank(b)
		require.NoError(t, err)

		require.Equal(t, sign(na-nb), sign(pa-pb), "%s vs %s", a, b)
	}
}

func TestRankersAgreeOnCategoryBoundaries(t *testing.T) {
	pairs := [][2]string{
		{"Ad 2d 3d 4d 5d", "Ac Ad Ah As Kc"},
		{"2c 2d 2h 2s 3c", "Ac Ad Ah Ks Kc"},
		{"2s 2d 2h 3s 3d", "As Ks Qs Js 9s"},
		{"2s 3s 4s 5s 7s", "Ad Ks Qc Jh Td"},
		{"Ad 2s 3c 4h 5d", "Ac Ad Ah Ks Qc"},
		{"2d 2s 3c 4h 5d", "Ad Ks Qc Jh 9d"},
	}
	for _, name := range Names() {
		r, err := New(name)
		require.NoError(t, err)
		for _, p := range pairs {
			worst, err := r.Rank(poker.MustParseHand(p[0]))
			require.NoError(t, err)
			best, err := r.Rank(poker.MustParseHand(p[1]))
			require.NoError(t, err)
			assert.Less(t, worst, best, "%s: %s should beat %s", name, p[0], p[1])
		}
	}
}

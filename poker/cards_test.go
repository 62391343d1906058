package poker

import (
	"errors"
	"math/bits"
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}

	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" {
		t.Errorf("Expected '2c', got %s", twoClubs.String())
	}
	if twoClubs.Index() != 0 {
		t.Errorf("Expected 2c at bit 0, got %d", twoClubs.Index())
	}

	var zero Card
	if zero.String() != "??" {
		t.Errorf("Expected '??' for zero card, got %s", zero.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		wantCard Card
		wantErr  bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"kh", NewCard(King, Hearts), false},
		{"Td", NewCard(Ten, Diamonds), false},
		{"10c", NewCard(Ten, Clubs), false},
		{"2C", NewCard(Two, Clubs), false},
		{"1s", 0, true},
		{"Ax", 0, true},
		{"A", 0, true},
		{"Asd", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Errorf("ParseCard(%q) error = %v, want ErrInvalidCard", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tc.input, err)
			}
			if card != tc.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.wantCard)
			}
		})
	}
}

func TestParseHand(t *testing.T) {
	t.Parallel()
	hand, err := ParseHand("AsKs 10h 2c")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if hand.CountCards() != 4 {
		t.Errorf("Expected 4 cards, got %d", hand.CountCards())
	}
	if !hand.HasCard(NewCard(Ten, Hearts)) {
		t.Error("Expected hand to contain Th")
	}
	if hand.String() != "As Ks Th 2c" {
		t.Errorf("Expected 'As Ks Th 2c', got %q", hand.String())
	}

	if _, err := ParseHand("AsAs"); !errors.Is(err, ErrCardCollision) {
		t.Errorf("Expected ErrCardCollision for duplicate card, got %v", err)
	}
	if _, err := ParseHand("AsK"); err == nil {
		t.Error("Expected error for truncated card")
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()
	cards := make(map[string]bool)

	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			card := NewCard(rank, suit)
			str := card.String()

			if cards[str] {
				t.Errorf("Duplicate card: %s", str)
			}
			cards[str] = true

			parsed, err := ParseCard(str)
			if err != nil {
				t.Errorf("Failed to parse %s: %v", str, err)
			}
			if parsed != card {
				t.Errorf("Round-trip failed for %s", str)
			}
		}
	}

	if len(cards) != 52 {
		t.Errorf("Expected 52 unique cards, got %d", len(cards))
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()
	aceSpades := MustParseCard("As")
	kingHearts := MustParseCard("Kh")
	queenDiamonds := MustParseCard("Qd")

	hand := NewHand(aceSpades, kingHearts)
	if !hand.HasCard(aceSpades) || !hand.HasCard(kingHearts) {
		t.Error("Hand should contain As and Kh")
	}
	if hand.HasCard(queenDiamonds) {
		t.Error("Hand should not contain Queen of Diamonds")
	}
	if hand.CountCards() != 2 {
		t.Errorf("Hand should have 2 cards, got %d", hand.CountCards())
	}

	hand.AddCard(queenDiamonds)
	if hand.CountCards() != 3 {
		t.Errorf("Hand should have 3 cards, got %d", hand.CountCards())
	}
	if !hand.Overlaps(NewHand(queenDiamonds)) {
		t.Error("Hand should overlap a hand holding Qd")
	}
	if hand.Overlaps(NewHand(MustParseCard("2c"))) {
		t.Error("Hand should not overlap a hand holding 2c")
	}
	if got := len(hand.Cards()); got != 3 {
		t.Errorf("Cards() returned %d cards, want 3", got)
	}
}

func TestHandBitset(t *testing.T) {
	t.Parallel()
	aceSpades := MustParseCard("As")
	aceHearts := MustParseCard("Ah")
	twoClubs := MustParseCard("2c")

	if bits.OnesCount64(uint64(aceSpades)) != 1 {
		t.Error("Card should be a single bit")
	}
	if aceSpades&aceHearts != 0 || aceSpades&twoClubs != 0 || aceHearts&twoClubs != 0 {
		t.Error("Different cards should not share bits")
	}

	combined := NewHand(aceSpades, aceHearts, twoClubs)
	if combined.CountCards() != 3 {
		t.Errorf("Combined hand should have 3 cards, got %d", combined.CountCards())
	}
}

func TestGetSuitMask(t *testing.T) {
	t.Parallel()
	var hand Hand
	for rank := uint8(0); rank < 13; rank++ {
		hand.AddCard(NewCard(rank, Spades))
	}

	if mask := hand.GetSuitMask(Spades); mask != 0x1FFF {
		t.Errorf("Expected all spades, got mask %016b", mask)
	}
	if hand.GetSuitMask(Hearts) != 0 {
		t.Error("Hearts should be empty")
	}
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}

func BenchmarkHandOperations(b *testing.B) {
	c1 := NewCard(Ace, Spades)
	c2 := NewCard(King, Hearts)
	c3 := NewCard(Queen, Diamonds)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hand := NewHand(c1, c2)
		hand.AddCard(c3)
		_ = hand.CountCards()
		_ = hand.HasCard(c1)
	}
}

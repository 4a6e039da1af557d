package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeckComposition(t *testing.T) {
	assert.Equal(t, 15, DeckSize)

	deck := newDeck(rand.New(rand.NewSource(1)))
	assert.Len(t, deck, DeckSize)

	counts := map[Role]int{}
	for _, r := range deck {
		counts[r]++
	}
	for _, r := range Roles {
		assert.Equalf(t, copiesPerRole, counts[r], "copies of %s", r)
	}
}

func TestDrawAndReturnKeepDeckWhole(t *testing.T) {
	g := newTestGame(t, 2)
	before := len(g.Deck)

	r := g.draw()
	assert.Len(t, g.Deck, before-1)

	g.returnAndShuffle(r)
	assert.Len(t, g.Deck, before)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := newDeck(rand.New(rand.NewSource(42)))
	b := newDeck(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

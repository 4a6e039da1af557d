package game

import "math/rand"

// Role is one of the five court roles.
type Role string

const (
	RoleDuke       Role = "Duke"
	RoleAssassin   Role = "Assassin"
	RoleCaptain    Role = "Captain"
	RoleAmbassador Role = "Ambassador"
	RoleContessa   Role = "Contessa"

	// RoleHidden is what opponents see in place of an unrevealed role.
	RoleHidden Role = "HIDDEN"
)

// Roles lists the playable roles, three copies of each in the deck.
var Roles = [...]Role{RoleDuke, RoleAssassin, RoleCaptain, RoleAmbassador, RoleContessa}

const copiesPerRole = 3

// DeckSize is the total number of role tokens in play: 5 roles x 3 copies.
// The sum of deck length and all hand slots stays at this value for the
// whole game.
const DeckSize = len(Roles) * copiesPerRole

// newDeck builds a freshly shuffled 15-card deck.
func newDeck(rng *rand.Rand) []Role {
	deck := make([]Role, 0, DeckSize)
	for _, r := range Roles {
		for i := 0; i < copiesPerRole; i++ {
			deck = append(deck, r)
		}
	}
	shuffle(deck, rng)
	return deck
}

// shuffle permutes the deck in place (Fisher-Yates).
func shuffle(deck []Role, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// draw removes and returns the top card. The 15-token count with at most
// 6 players x 2 cards + 2 exchange draws keeps the deck non-empty.
func (g *Game) draw() Role {
	top := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return top
}

// returnAndShuffle puts a card back and reshuffles, used when a proven
// claim swaps the shown card out of the accused's hand.
func (g *Game) returnAndShuffle(r Role) {
	g.Deck = append(g.Deck, r)
	shuffle(g.Deck, g.rng)
}

package game

// State is the phase of a single room's game.
type State string

const (
	StateLobby              State = "LOBBY"
	StatePlaying            State = "PLAYING"
	StateWaitingAction      State = "WAITING_ACTION_RESPONSE"
	StateWaitingBlock       State = "WAITING_BLOCK_RESPONSE"
	StateResolvingChallenge State = "RESOLVING_CHALLENGE"
	StateLoseInfluence      State = "LOSE_INFLUENCE"
	StateExchangeCards      State = "EXCHANGE_CARDS"
	StateGameOver           State = "GAME_OVER"
)

// Response is a reply to an in-flight action or block claim.
type Response string

const (
	ResponsePass      Response = "PASS"
	ResponseChallenge Response = "CHALLENGE"
	ResponseBlock     Response = "BLOCK"
)

// Card is a hand slot. The role can be swapped in place (a proven claim
// draws a replacement) while revealed tracks separately.
type Card struct {
	Role     Role `json:"role"`
	Revealed bool `json:"revealed"`
}

// Player is one seat in a room. Seats are never removed once the game has
// started; a disconnected player keeps their index so turn arithmetic holds.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Coins        int    `json:"coins"`
	Hand         []Card `json:"hand"`
	IsEliminated bool   `json:"isEliminated"`
	Connected    bool   `json:"connected"`
}

// Influence is the number of unrevealed cards the player still holds.
func (p *Player) Influence() int {
	n := 0
	for _, c := range p.Hand {
		if !c.Revealed {
			n++
		}
	}
	return n
}

// Action is the in-flight action record, present from declaration until the
// turn settles.
type Action struct {
	Type      ActionType `json:"type"`
	SourceID  string     `json:"sourceId"`
	TargetID  string     `json:"targetId,omitempty"`
	Cost      int        `json:"cost"`
	Votes     []string   `json:"votes"`
	BlockerID string     `json:"blockerId,omitempty"`
	BlockRole Role       `json:"blockRole,omitempty"`
	TempCards []Role     `json:"tempCards,omitempty"`
}

func (a *Action) hasVote(playerID string) bool {
	for _, v := range a.Votes {
		if v == playerID {
			return true
		}
	}
	return false
}

// Challenge is the in-flight challenge record, present only while the
// accused player still has to show a card.
type Challenge struct {
	ChallengerID     string `json:"challengerId"`
	AccusedID        string `json:"accusedId"`
	Role             Role   `json:"role"`
	IsBlockChallenge bool   `json:"isBlockChallenge"`
}

// PendingLoss is one queued influence-loss obligation.
type PendingLoss struct {
	PlayerID string `json:"playerId"`
	Count    int    `json:"count"`
}

// continuation says what to do once the loss queue drains: re-run the
// in-flight action or just advance the turn.
type continuation int

const (
	advanceTurn continuation = iota
	resolveAction
)

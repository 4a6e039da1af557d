package game

// The view types are what clients actually receive. They are built field
// by field instead of deep-copying the room so a new field on the model
// never reaches the wire without a decision here.

// CardView is a hand slot as seen by one viewer.
type CardView struct {
	Role     Role `json:"role"`
	Revealed bool `json:"revealed"`
}

// PlayerView is a seat as seen by one viewer.
type PlayerView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Coins        int        `json:"coins"`
	Hand         []CardView `json:"hand"`
	IsEliminated bool       `json:"isEliminated"`
	Connected    bool       `json:"connected"`
}

// ActionView is the in-flight action as seen by one viewer. TempCards is
// populated only for the acting player during an exchange.
type ActionView struct {
	Type      ActionType `json:"type"`
	SourceID  string     `json:"sourceId"`
	TargetID  string     `json:"targetId,omitempty"`
	Cost      int        `json:"cost"`
	Votes     []string   `json:"votes"`
	BlockerID string     `json:"blockerId,omitempty"`
	BlockRole Role       `json:"blockRole,omitempty"`
	TempCards []Role     `json:"tempCards,omitempty"`
}

// RoomView is the full redacted snapshot sent to one recipient.
type RoomView struct {
	Code          string        `json:"code"`
	Players       []PlayerView  `json:"players"`
	Deck          []Role        `json:"deck"`
	State         State         `json:"state"`
	TurnIndex     int           `json:"turnIndex"`
	Logs          []string      `json:"logs"`
	CurrentAction *ActionView   `json:"currentAction,omitempty"`
	Challenge     *Challenge    `json:"challenge,omitempty"`
	PendingLoss   []PendingLoss `json:"pendingLoss"`
}

// ViewFor projects the room for a single viewer: the deck is blanked,
// every other player's unrevealed roles are hidden, and exchange draws
// are visible only to the exchanging player. An unknown viewer id (e.g. a
// spectator) sees everything redacted.
func (g *Game) ViewFor(viewerID string) RoomView {
	players := make([]PlayerView, len(g.Players))
	for i, p := range g.Players {
		hand := make([]CardView, len(p.Hand))
		for j, c := range p.Hand {
			role := c.Role
			if p.ID != viewerID && !c.Revealed {
				role = RoleHidden
			}
			hand[j] = CardView{Role: role, Revealed: c.Revealed}
		}
		players[i] = PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Coins:        p.Coins,
			Hand:         hand,
			IsEliminated: p.IsEliminated,
			Connected:    p.Connected,
		}
	}

	view := RoomView{
		Code:        g.Code,
		Players:     players,
		Deck:        []Role{},
		State:       g.State,
		TurnIndex:   g.TurnIndex,
		Logs:        append([]string{}, g.Logs...),
		PendingLoss: append([]PendingLoss{}, g.PendingLoss...),
	}
	if g.Challenge != nil {
		ch := *g.Challenge
		view.Challenge = &ch
	}
	if act := g.CurrentAction; act != nil {
		av := ActionView{
			Type:      act.Type,
			SourceID:  act.SourceID,
			TargetID:  act.TargetID,
			Cost:      act.Cost,
			Votes:     append([]string{}, act.Votes...),
			BlockerID: act.BlockerID,
			BlockRole: act.BlockRole,
		}
		if act.SourceID == viewerID {
			av.TempCards = append([]Role{}, act.TempCards...)
		}
		view.CurrentAction = &av
	}
	return view
}

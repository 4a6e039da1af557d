package game

import (
	"fmt"
	"math/rand"
)

const (
	// MaxPlayers is the seat limit per room.
	MaxPlayers = 6
	// MinPlayers is the minimum needed to start a game.
	MinPlayers = 2

	startingCoins = 2
	// A player sitting on this many coins must coup.
	mustCoupAt = 10

	logLimit = 50
)

// Game is the authoritative state of one room. It owns every mutation:
// callers feed it commands and read back per-viewer projections. It holds
// no transport or global state; the caller serializes access per room.
type Game struct {
	Code          string
	Players       []*Player
	Deck          []Role
	State         State
	TurnIndex     int
	Logs          []string
	CurrentAction *Action
	Challenge     *Challenge
	PendingLoss   []PendingLoss

	// next is consumed by settle() once the loss queue drains.
	next continuation
	rng  *rand.Rand
}

// New creates a room in LOBBY with the host seated first.
func New(code, hostID, hostName string, seed int64) *Game {
	return &Game{
		Code:    code,
		State:   StateLobby,
		Players: []*Player{newPlayer(hostID, hostName)},
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func newPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Coins: startingCoins, Connected: true}
}

// AddPlayer seats a new player. Only possible in LOBBY and below the seat
// limit; reports whether the player was admitted.
func (g *Game) AddPlayer(id, name string) bool {
	if g.State != StateLobby || len(g.Players) >= MaxPlayers {
		return false
	}
	g.Players = append(g.Players, newPlayer(id, name))
	return true
}

// Start deals a fresh game. Any seated player may start from the lobby.
func (g *Game) Start(playerID string) bool {
	if g.State != StateLobby || len(g.Players) < MinPlayers || g.FindPlayer(playerID) == nil {
		return false
	}
	g.beginGame()
	return true
}

// PlayAgain restarts after GAME_OVER. Only the host (first seat) may
// trigger it; players who dropped mid-game give up their seat here.
func (g *Game) PlayAgain(playerID string) bool {
	if g.State != StateGameOver || len(g.Players) == 0 || g.Players[0].ID != playerID {
		return false
	}
	remaining := g.Players[:0]
	for _, p := range g.Players {
		if p.Connected {
			remaining = append(remaining, p)
		}
	}
	g.Players = remaining
	if len(g.Players) < MinPlayers {
		// Not enough connected players for another round: reopen the
		// lobby so new players can be seated.
		g.State = StateLobby
		return true
	}
	g.beginGame()
	return true
}

func (g *Game) beginGame() {
	g.Deck = newDeck(g.rng)
	for _, p := range g.Players {
		p.Coins = startingCoins
		p.Hand = []Card{{Role: g.draw()}, {Role: g.draw()}}
		p.IsEliminated = false
	}
	g.CurrentAction = nil
	g.Challenge = nil
	g.PendingLoss = nil
	g.next = advanceTurn
	g.Logs = nil
	g.State = StatePlaying
	g.TurnIndex = g.rng.Intn(len(g.Players))
	g.logf("Game started! Turn: %s", g.CurrentPlayer().Name)
}

// HandleAction declares an action for the current turn holder. Invalid
// declarations are ignored without mutating anything.
func (g *Game) HandleAction(playerID string, actionType ActionType, targetID string) {
	if g.State != StatePlaying {
		return
	}
	p := g.FindPlayer(playerID)
	if p == nil || p.IsEliminated || p != g.CurrentPlayer() {
		return
	}
	def, ok := Actions[actionType]
	if !ok {
		return
	}
	if p.Coins >= mustCoupAt && actionType != ActionCoup {
		return
	}
	if p.Coins < def.Cost {
		return
	}
	var target *Player
	if def.NeedsTarget {
		target = g.FindPlayer(targetID)
		if target == nil || target.IsEliminated || target == p {
			return
		}
	} else {
		targetID = ""
	}

	// Cost comes off up front so a failed challenge can refund it.
	p.Coins -= def.Cost
	g.CurrentAction = &Action{
		Type:     actionType,
		SourceID: playerID,
		TargetID: targetID,
		Cost:     def.Cost,
		Votes:    []string{},
	}
	g.next = advanceTurn

	if target != nil {
		g.logf("%s used %s on %s", p.Name, actionType, target.Name)
	} else {
		g.logf("%s used %s", p.Name, actionType)
	}

	if !def.Blockable && !def.Challengeable {
		if actionType == ActionCoup {
			g.queueLoss(targetID, 1)
		} else {
			g.resolveAction()
		}
		return
	}
	g.State = StateWaitingAction
}

// HandleResponse records a PASS, CHALLENGE or BLOCK against the in-flight
// claim. The claimant (actor, or blocker during a block) may not respond
// to their own claim.
func (g *Game) HandleResponse(playerID string, response Response, blockRole Role) {
	act := g.CurrentAction
	if act == nil {
		return
	}
	if g.State != StateWaitingAction && g.State != StateWaitingBlock {
		return
	}
	p := g.FindPlayer(playerID)
	if p == nil || p.IsEliminated || !p.Connected {
		return
	}
	if g.State == StateWaitingAction && playerID == act.SourceID {
		return
	}
	if g.State == StateWaitingBlock && playerID == act.BlockerID {
		return
	}

	switch response {
	case ResponsePass:
		if !act.hasVote(playerID) {
			act.Votes = append(act.Votes, playerID)
		}
		g.checkQuorum()

	case ResponseChallenge:
		if g.State == StateWaitingAction {
			role := Actions[act.Type].Role
			if role == "" {
				return
			}
			g.initChallenge(playerID, act.SourceID, role, false)
		} else {
			g.initChallenge(playerID, act.BlockerID, act.BlockRole, true)
		}

	case ResponseBlock:
		if g.State != StateWaitingAction {
			return
		}
		def := Actions[act.Type]
		if !def.Blockable || !def.canBlockWith(blockRole) {
			return
		}
		if act.Type != ActionForeignAid && playerID != act.TargetID {
			return
		}
		act.BlockerID = playerID
		act.BlockRole = blockRole
		act.Votes = []string{}
		g.State = StateWaitingBlock
		g.logf("%s blocked with %s.", p.Name, blockRole)
	}
}

// checkQuorum resolves the pending decision once every eligible player
// other than the claimant has passed.
func (g *Game) checkQuorum() {
	act := g.CurrentAction
	if act == nil {
		return
	}
	needed := g.activeCount() - 1
	if len(act.Votes) < needed {
		return
	}
	switch g.State {
	case StateWaitingAction:
		g.resolveAction()
	case StateWaitingBlock:
		g.logf("Block successful.")
		g.nextTurn()
	}
}

func (g *Game) initChallenge(challengerID, accusedID string, role Role, isBlockChallenge bool) {
	g.State = StateResolvingChallenge
	g.CurrentAction.Votes = []string{}
	g.Challenge = &Challenge{
		ChallengerID:     challengerID,
		AccusedID:        accusedID,
		Role:             role,
		IsBlockChallenge: isBlockChallenge,
	}
	g.logf("%s CHALLENGED %s (claims %s)!",
		g.FindPlayer(challengerID).Name, g.FindPlayer(accusedID).Name, role)
}

// HandleChooseCard is the accused showing a card during a challenge, or an
// obligated player picking which influence to lose.
func (g *Game) HandleChooseCard(playerID string, index int) {
	switch g.State {
	case StateResolvingChallenge:
		g.resolveChallenge(playerID, index)
	case StateLoseInfluence:
		g.handleCardLoss(playerID, index)
	}
}

func (g *Game) resolveChallenge(playerID string, index int) {
	ch := g.Challenge
	if ch == nil || playerID != ch.AccusedID {
		return
	}
	accused := g.FindPlayer(ch.AccusedID)
	if index < 0 || index >= len(accused.Hand) || accused.Hand[index].Revealed {
		return
	}
	challenger := g.FindPlayer(ch.ChallengerID)
	card := accused.Hand[index]
	g.Challenge = nil

	if card.Role == ch.Role {
		// Claim proven: challenger pays, the shown card goes back into
		// the deck and is replaced by a fresh draw.
		g.logf("%s HAS %s! %s lost.", accused.Name, card.Role, challenger.Name)
		accused.Hand[index] = Card{Role: g.draw()}
		g.returnAndShuffle(card.Role)
		if ch.IsBlockChallenge {
			g.next = advanceTurn
		} else {
			g.next = resolveAction
		}
		g.queueLoss(challenger.ID, 1)
		return
	}

	g.logf("%s DOES NOT HAVE %s! Caught bluffing.", accused.Name, ch.Role)
	accused.Hand[index].Revealed = true
	g.checkElimination(accused)

	if ch.IsBlockChallenge {
		// The bluffed block is void, the original action still happens.
		g.next = resolveAction
	} else {
		g.next = advanceTurn
		g.logf("Action failed. Coins refunded.")
		if source := g.FindPlayer(g.CurrentAction.SourceID); source != nil {
			source.Coins += g.CurrentAction.Cost
		}
	}
	g.settle()
}

// settle is the single dispatcher for resuming play once no influence
// losses are outstanding.
func (g *Game) settle() {
	if len(g.PendingLoss) > 0 || g.State == StateGameOver {
		return
	}
	if g.next == resolveAction {
		g.next = advanceTurn
		g.resolveAction()
		return
	}
	g.nextTurn()
}

func (g *Game) resolveAction() {
	act := g.CurrentAction
	if act == nil {
		return
	}
	source := g.FindPlayer(act.SourceID)
	if source == nil || source.IsEliminated {
		g.nextTurn()
		return
	}
	var target *Player
	if act.TargetID != "" {
		target = g.FindPlayer(act.TargetID)
	}

	switch act.Type {
	case ActionIncome:
		source.Coins++
	case ActionForeignAid:
		source.Coins += 2
	case ActionTax:
		source.Coins += 3
	case ActionSteal:
		if target != nil && !target.IsEliminated {
			stolen := min(2, target.Coins)
			target.Coins -= stolen
			source.Coins += stolen
			g.logf("%s stole %d coins from %s.", source.Name, stolen, target.Name)
		}
	case ActionAssassinate:
		if target != nil && !target.IsEliminated {
			g.logf("%s was assassinated!", target.Name)
			g.queueLoss(target.ID, 1)
			return
		}
	case ActionExchange:
		g.State = StateExchangeCards
		act.TempCards = []Role{g.draw(), g.draw()}
		g.logf("%s is exchanging cards...", source.Name)
		return
	case ActionCoup:
		// already settled through the loss queue at declaration
	}

	if len(g.PendingLoss) == 0 {
		g.nextTurn()
	}
}

// HandleExchange completes an EXCHANGE: the actor keeps exactly as many
// roles as they have unrevealed slots, chosen from their unrevealed roles
// plus the two drawn cards. Anything else is rejected untouched.
func (g *Game) HandleExchange(playerID string, keptRoles []Role) {
	act := g.CurrentAction
	if g.State != StateExchangeCards || act == nil || act.SourceID != playerID {
		return
	}
	p := g.FindPlayer(playerID)
	if len(keptRoles) != p.Influence() {
		return
	}

	pool := make([]Role, 0, p.Influence()+len(act.TempCards))
	for _, c := range p.Hand {
		if !c.Revealed {
			pool = append(pool, c.Role)
		}
	}
	pool = append(pool, act.TempCards...)

	// The selection must be a sub-multiset of the pool.
	for _, r := range keptRoles {
		found := -1
		for i, pr := range pool {
			if pr == r {
				found = i
				break
			}
		}
		if found < 0 {
			return
		}
		pool = append(pool[:found], pool[found+1:]...)
	}

	// Kept roles fill the unrevealed slots in order; revealed cards stay.
	ki := 0
	for i := range p.Hand {
		if !p.Hand[i].Revealed {
			p.Hand[i] = Card{Role: keptRoles[ki]}
			ki++
		}
	}
	g.Deck = append(g.Deck, pool...)
	shuffle(g.Deck, g.rng)
	act.TempCards = nil

	g.logf("%s exchanged cards.", p.Name)
	g.nextTurn()
}

// queueLoss makes playerID owe count influence reveals. A player who
// cannot cover the debt is flipped face up immediately.
func (g *Game) queueLoss(playerID string, count int) {
	p := g.FindPlayer(playerID)
	if p == nil || p.IsEliminated {
		return
	}
	if p.Influence() <= count {
		for i := range p.Hand {
			p.Hand[i].Revealed = true
		}
		g.checkElimination(p)
		g.settle()
		return
	}
	g.PendingLoss = append(g.PendingLoss, PendingLoss{PlayerID: playerID, Count: count})
	g.State = StateLoseInfluence
}

func (g *Game) handleCardLoss(playerID string, index int) {
	if len(g.PendingLoss) == 0 {
		return
	}
	task := &g.PendingLoss[0]
	if task.PlayerID != playerID {
		return
	}
	p := g.FindPlayer(playerID)
	if p == nil || index < 0 || index >= len(p.Hand) || p.Hand[index].Revealed {
		return
	}
	p.Hand[index].Revealed = true
	g.logf("%s revealed %s.", p.Name, p.Hand[index].Role)
	g.checkElimination(p)

	task.Count--
	if task.Count <= 0 {
		g.PendingLoss = g.PendingLoss[1:]
	}
	if len(g.PendingLoss) == 0 {
		g.settle()
	}
}

// checkElimination derives elimination from the hand; it is re-checked
// after every reveal, never set on its own.
func (g *Game) checkElimination(p *Player) {
	if p.IsEliminated || p.Influence() > 0 {
		return
	}
	p.IsEliminated = true
	g.logf("%s ELIMINATED.", p.Name)
}

// nextTurn clears the in-flight records and hands the turn to the next
// living, connected player. Ends the game when only one remains.
func (g *Game) nextTurn() {
	g.CurrentAction = nil
	g.Challenge = nil
	g.next = advanceTurn
	g.State = StatePlaying

	for i := 0; i < len(g.Players); i++ {
		g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
		p := g.Players[g.TurnIndex]
		if !p.IsEliminated && p.Connected {
			break
		}
	}

	var survivor *Player
	alive := 0
	for _, p := range g.Players {
		if !p.IsEliminated && p.Connected {
			alive++
			survivor = p
		}
	}
	if alive == 1 {
		g.State = StateGameOver
		g.logf("WINNER: %s!!!", survivor.Name)
	}
}

// HandleDisconnect marks a player gone. In the lobby the seat is freed;
// mid-game the hand is flipped face up and the departure counts as the
// player's implicit response so nobody waits on them.
func (g *Game) HandleDisconnect(playerID string) {
	p := g.FindPlayer(playerID)
	if p == nil || !p.Connected {
		return
	}
	if g.State == StateLobby {
		for i, seat := range g.Players {
			if seat.ID == playerID {
				g.Players = append(g.Players[:i], g.Players[i+1:]...)
				break
			}
		}
		g.logf("%s left.", p.Name)
		return
	}

	p.Connected = false
	for i := range p.Hand {
		p.Hand[i].Revealed = true
	}
	g.logf("%s disconnected.", p.Name)
	g.checkElimination(p)

	if g.State == StateGameOver {
		return
	}
	g.resolveDeparture(playerID)

	// The departure may have left a single survivor without any turn
	// advancing; nextTurn owns the end-of-game check.
	if g.State != StateGameOver && g.activeCount() == 1 {
		g.nextTurn()
	}
}

func (g *Game) resolveDeparture(playerID string) {
	// Debts owed by the leaver are void, their cards are already face up.
	kept := g.PendingLoss[:0]
	for _, task := range g.PendingLoss {
		if task.PlayerID != playerID {
			kept = append(kept, task)
		}
	}
	g.PendingLoss = kept

	act := g.CurrentAction
	switch g.State {
	case StatePlaying:
		if g.CurrentPlayer().ID == playerID {
			g.nextTurn()
		}
	case StateWaitingAction:
		if act.SourceID == playerID {
			g.nextTurn()
			return
		}
		g.checkQuorum()
	case StateWaitingBlock:
		if act.SourceID == playerID {
			g.nextTurn()
			return
		}
		if act.BlockerID == playerID {
			// Block abandoned, the action goes through.
			g.resolveAction()
			return
		}
		g.checkQuorum()
	case StateResolvingChallenge:
		ch := g.Challenge
		switch playerID {
		case ch.AccusedID:
			// Claim left unproven.
			g.Challenge = nil
			if ch.IsBlockChallenge {
				g.resolveAction()
			} else {
				g.nextTurn()
			}
		case ch.ChallengerID:
			// Challenge withdrawn, the claim stands.
			g.Challenge = nil
			if ch.IsBlockChallenge {
				g.logf("Block successful.")
				g.nextTurn()
			} else {
				g.resolveAction()
			}
		}
	case StateLoseInfluence:
		if len(g.PendingLoss) == 0 {
			g.settle()
		}
	case StateExchangeCards:
		if act.SourceID == playerID {
			// Put the undrawn offer back so the deck stays whole.
			g.Deck = append(g.Deck, act.TempCards...)
			act.TempCards = nil
			shuffle(g.Deck, g.rng)
			g.nextTurn()
		}
	}
}

// FindPlayer returns the seat with the given id, or nil.
func (g *Game) FindPlayer(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the turn holder.
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.TurnIndex]
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.IsEliminated && p.Connected {
			n++
		}
	}
	return n
}

func (g *Game) logf(format string, args ...interface{}) {
	g.Logs = append(g.Logs, fmt.Sprintf(format, args...))
	if len(g.Logs) > logLimit {
		g.Logs = g.Logs[len(g.Logs)-logLimit:]
	}
}

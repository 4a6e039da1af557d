package room

import (
	"sync"

	"coup-server/internal/game"
)

// Room pairs one game with the mutex that serializes every command for it.
// All reads and writes of the game go through Do; rooms are independent of
// each other.
type Room struct {
	Code string

	mu   sync.Mutex
	game *game.Game
}

// Do runs fn with exclusive access to the room's game.
func (r *Room) Do(fn func(g *game.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.game)
}

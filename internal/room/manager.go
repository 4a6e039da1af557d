package room

import (
	"errors"
	"math/rand"
	"time"

	"coup-server/internal/config"
	"coup-server/internal/game"
)

// ErrRoomUnavailable is the only join failure a client ever sees; the
// message is part of the wire contract.
var ErrRoomUnavailable = errors.New("Room not found or full")

// Store is the persistence seam for live rooms.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	AllRooms() []*Room
}

// Manager owns the room registry: creation with unique codes, joins, and
// the disconnect sweep. It holds no game rules of its own.
type Manager struct {
	store Store
	cfg   config.Config
}

func NewManager(s Store, cfg config.Config) *Manager {
	return &Manager{store: s, cfg: cfg}
}

// CreateRoom opens a new lobby hosted by the given player.
func (m *Manager) CreateRoom(hostID, hostName string) *Room {
	if hostName == "" {
		hostName = "Player"
	}
	code := m.uniqueCode()
	r := &Room{
		Code: code,
		game: game.New(code, hostID, hostName, time.Now().UnixNano()),
	}
	m.store.SaveRoom(r)
	return r
}

// JoinRoom seats a player in an existing lobby.
func (m *Manager) JoinRoom(code, playerID, playerName string) (*Room, error) {
	if playerName == "" {
		playerName = "Player"
	}
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, ErrRoomUnavailable
	}
	joined := false
	r.Do(func(g *game.Game) {
		joined = g.AddPlayer(playerID, playerName)
	})
	if !joined {
		return nil, ErrRoomUnavailable
	}
	return r, nil
}

// Get looks up a live room by code.
func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

// HandleDisconnect sweeps every room the player sits in, applies the
// departure to the game, and drops rooms that no longer have anyone
// connected. Returns the rooms that still need a state broadcast.
func (m *Manager) HandleDisconnect(playerID string) []*Room {
	var touched []*Room
	for _, r := range m.store.AllRooms() {
		member := false
		abandoned := true
		r.Do(func(g *game.Game) {
			if g.FindPlayer(playerID) == nil {
				abandoned = false
				return
			}
			member = true
			g.HandleDisconnect(playerID)
			for _, p := range g.Players {
				if p.Connected {
					abandoned = false
					break
				}
			}
		})
		if !member {
			continue
		}
		if abandoned {
			m.store.DeleteRoom(r.Code)
			continue
		}
		touched = append(touched, r)
	}
	return touched
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// uniqueCode draws codes until one is free among live rooms.
func (m *Manager) uniqueCode() string {
	for {
		code := randCode(m.cfg.RoomCodeLen)
		if _, taken := m.store.GetRoom(code); !taken {
			return code
		}
	}
}

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

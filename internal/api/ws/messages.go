package ws

import (
	"encoding/json"

	"coup-server/internal/game"
)

// Envelope is the frame every client command arrives in. The Type tag
// selects one of the payload types below; dispatch is an exhaustive
// switch, so an unknown type is dropped loudly instead of silently
// half-handled.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound command payloads. This is the closed set of things a client can
// ask for.

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RoomPayload covers the commands that carry nothing but a room code
// (start, playAgain).
type RoomPayload struct {
	Code string `json:"code"`
}

type ActionPayload struct {
	Code       string          `json:"code"`
	ActionType game.ActionType `json:"actionType"`
	TargetID   string          `json:"targetId"`
}

type ResponsePayload struct {
	Code     string        `json:"code"`
	Response game.Response `json:"response"`
	// Extra is the claimed role when the response is a BLOCK.
	Extra game.Role `json:"extra"`
}

type ChooseCardPayload struct {
	Code  string `json:"code"`
	Index int    `json:"index"`
}

type ExchangePayload struct {
	Code  string      `json:"code"`
	Roles []game.Role `json:"roles"`
}

// serverMsg is the envelope for everything the server sends.
type serverMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"coup-server/internal/game"
	"coup-server/internal/room"
)

// RoomManager is what the hub needs from the room layer.
type RoomManager interface {
	CreateRoom(hostID, hostName string) *room.Room
	JoinRoom(code, playerID, playerName string) (*room.Room, error)
	Get(code string) (*room.Room, bool)
	HandleDisconnect(playerID string) []*room.Room
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Client is one websocket connection with its assigned player identity.
type Client struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex // gorilla allows one concurrent writer
}

func (c *Client) send(msgType string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(serverMsg{Type: msgType, Data: data}); err != nil {
		log.Printf("write to %s: %v", c.ID, err)
	}
}

// Hub tracks live connections and routes typed commands into rooms. Every
// state change ends with a per-viewer update broadcast; the redacted view
// is the only game state that ever leaves the process.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rm      RoomManager
}

func NewHub(rm RoomManager) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rm:      rm,
	}
}

// HandleWS upgrades the connection, assigns it an identity, and pumps
// commands until the peer goes away.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	client := &Client{ID: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	client.send("connected", gin.H{"id": client.ID})

	defer func() {
		h.mu.Lock()
		delete(h.clients, client.ID)
		h.mu.Unlock()
		_ = conn.Close()
		for _, r := range h.rm.HandleDisconnect(client.ID) {
			h.BroadcastRoom(r)
		}
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read from %s: %v", client.ID, err)
			}
			return
		}
		h.dispatch(client, env)
	}
}

func (h *Hub) dispatch(client *Client, env Envelope) {
	switch env.Type {
	case "createRoom":
		var p CreateRoomPayload
		if !decode(env, &p) {
			return
		}
		r := h.rm.CreateRoom(client.ID, p.Name)
		client.send("joined", gin.H{"code": r.Code, "id": client.ID})
		h.BroadcastRoom(r)

	case "joinRoom":
		var p JoinRoomPayload
		if !decode(env, &p) {
			return
		}
		r, err := h.rm.JoinRoom(p.Code, client.ID, p.Name)
		if err != nil {
			client.send("error", gin.H{"message": err.Error()})
			return
		}
		client.send("joined", gin.H{"code": r.Code, "id": client.ID})
		h.BroadcastRoom(r)

	case "start":
		var p RoomPayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.Start(client.ID)
		})

	case "playAgain":
		var p RoomPayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.PlayAgain(client.ID)
		})

	case "action":
		var p ActionPayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.HandleAction(client.ID, p.ActionType, p.TargetID)
		})

	case "response":
		var p ResponsePayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.HandleResponse(client.ID, p.Response, p.Extra)
		})

	case "chooseCard":
		var p ChooseCardPayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.HandleChooseCard(client.ID, p.Index)
		})

	case "exchange":
		var p ExchangePayload
		if !decode(env, &p) {
			return
		}
		h.withRoom(p.Code, func(g *game.Game) {
			g.HandleExchange(client.ID, p.Roles)
		})

	default:
		log.Printf("unknown command %q from %s", env.Type, client.ID)
	}
}

// withRoom runs a command under the room's lock and broadcasts the
// resulting state to everyone seated.
func (h *Hub) withRoom(code string, fn func(g *game.Game)) {
	r, ok := h.rm.Get(code)
	if !ok {
		return
	}
	r.Do(fn)
	h.BroadcastRoom(r)
}

// BroadcastRoom sends each connected player their own redacted snapshot.
func (h *Hub) BroadcastRoom(r *room.Room) {
	type delivery struct {
		client *Client
		view   game.RoomView
	}
	var deliveries []delivery
	r.Do(func(g *game.Game) {
		for _, p := range g.Players {
			if !p.Connected {
				continue
			}
			h.mu.RLock()
			client, ok := h.clients[p.ID]
			h.mu.RUnlock()
			if !ok {
				continue
			}
			deliveries = append(deliveries, delivery{client: client, view: g.ViewFor(p.ID)})
		}
	})
	for _, d := range deliveries {
		d.client.send("update", d.view)
	}
}

func decode(env Envelope, dst interface{}) bool {
	if err := json.Unmarshal(env.Data, dst); err != nil {
		log.Printf("malformed %s payload: %v", env.Type, err)
		return false
	}
	return true
}

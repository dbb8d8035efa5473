package ws

import (
	"fmt"
	"sync"

	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Hub fans small JSON events out to every connection subscribed to a
// classroom room. Membership is in-memory only; events are hints and
// clients are expected to refetch authoritative state, there is no replay.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*client
}

// wsConn is the slice of *websocket.Conn the hub relies on.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	id   string
	user models.Account
	conn wsConn

	writeLock sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*client),
	}
}

func RoomOfClassroom(classroomId uint) string {
	return fmt.Sprintf("classroom_%d", classroomId)
}

// Event is the envelope of every server-to-client message.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func (h *Hub) Broadcast(room string, event string, data any) {
	payload, err := jsoniter.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("An error occurred when encoding realtime event...")
		return
	}

	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[room]))
	for _, member := range h.rooms[room] {
		members = append(members, member)
	}
	h.mu.RUnlock()

	for _, member := range members {
		member.writeLock.Lock()
		err := member.conn.WriteMessage(websocket.TextMessage, payload)
		member.writeLock.Unlock()
		if err != nil {
			log.Debug().Err(err).Str("connection", member.id).Msg("Dropping unwritable realtime connection...")
			h.drop(member)
		}
	}
}

func (h *Hub) join(room string, member *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*client)
	}
	h.rooms[room][member.id] = member
}

func (h *Hub) leave(room string, member *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[room], member.id)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) drop(member *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, member.id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	_ = member.conn.Close()
}

func newClient(conn wsConn, user models.Account) *client {
	return &client{
		id:   uuid.NewString(),
		user: user,
		conn: conn,
	}
}

package ws

import (
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/gofiber/contrib/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

type clientMessage struct {
	Event       string `json:"event"`
	ClassroomID uint   `json:"classroom_id"`
}

// ServeConn pumps a single realtime connection until it closes, handling
// room membership messages from the client.
func (h *Hub) ServeConn(conn *websocket.Conn, user models.Account) {
	member := newClient(conn, user)
	defer h.drop(member)

	log.Debug().Str("connection", member.id).Str("user", user.Name).Msg("Realtime connection established.")

	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if mt != websocket.TextMessage {
			continue
		}

		var msg clientMessage
		if err := jsoniter.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("connection", member.id).Msg("Ignored a malformed realtime message...")
			continue
		}

		room := RoomOfClassroom(msg.ClassroomID)
		switch msg.Event {
		case "join":
			h.join(room, member)
			h.Broadcast(room, "user_joined", map[string]any{
				"username": user.Name,
			})
		case "leave":
			h.leave(room, member)
		}
	}

	log.Debug().Str("connection", member.id).Msg("Realtime connection closed.")
}

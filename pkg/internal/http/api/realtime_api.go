package api

import (
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// MapRealtime mounts the websocket endpoint clients use to follow a
// classroom's rooms.
func (a *API) MapRealtime(app *fiber.App, path string) {
	app.Use(path, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get(path, a.authRequired, websocket.New(func(conn *websocket.Conn) {
		user := conn.Locals("user").(models.Account)
		a.hub.ServeConn(conn, user)
	}))
}

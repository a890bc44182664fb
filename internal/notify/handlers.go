package notify

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:userID", websocket.New(func(c *websocket.Conn) {
		userID := c.Params("userID")
		client := hub.Register(userID)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		// Closing Send here releases the writer; waiting on it afterwards
		// would hang until the next broadcast.
		hub.Unregister(client)
		<-done
	}))
}

package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles a console websocket connection for one operator.
func ServeWs(hub *Hub, c *websocket.Conn, operator string) {
	client := &Client{Hub: hub, Conn: c, Operator: operator, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}

package server

import (
	"time"

	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

// writeWSWithHeartbeat pumps send to conn and writes a ping message after
// interval without other traffic. It returns when send is closed.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

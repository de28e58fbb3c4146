package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bft-labs/kalah/pkg/log"
)

const wsIdlePingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", log.Err(err))
		return
	}
	client := s.hub.Register()
	client.sendJSON(snapshotMessage(s.session.Snapshot()))

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client)
	}()

	defer s.hub.Unregister(client)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.sendJSON(wsMessage{Type: "error", Error: "invalid message"})
			continue
		}
		s.handleWSMessage(client, msg)
	}
}

func (s *Server) handleWSMessage(c *Client, msg wsMessage) {
	switch msg.Type {
	case "sow":
		if msg.Position == nil {
			c.sendJSON(wsMessage{Type: "error", Error: "missing position"})
			return
		}
		if err := s.session.Submit(*msg.Position); err != nil {
			c.sendJSON(wsMessage{Type: "ignored", Position: msg.Position, Error: err.Error()})
		}
	case "restart":
		if err := s.session.Restart(); err != nil {
			c.sendJSON(wsMessage{Type: "error", Error: err.Error()})
		}
	case "request_snapshot":
		c.sendJSON(snapshotMessage(s.session.Snapshot()))
	default:
		c.sendJSON(wsMessage{Type: "error", Error: "unknown message type"})
	}
}

// writeWSWithHeartbeat drains the client's queue onto conn and pings when
// the connection has been idle. It returns when the client is unregistered
// or a write fails.
func writeWSWithHeartbeat(conn *websocket.Conn, c *Client) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case <-c.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return nil
		case msg := <-c.send:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

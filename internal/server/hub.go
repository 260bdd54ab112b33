package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub fans game events out to every connected websocket client.
type Hub struct {
	mu                sync.Mutex
	clients           map[*Client]struct{}
	broadcastHistory  chan historyPayload
	broadcastStatus   chan StatusResponse
	broadcastReset    chan StatusResponse
	broadcastSettings chan settingsPayload
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:           make(map[*Client]struct{}),
		broadcastHistory:  make(chan historyPayload, 32),
		broadcastStatus:   make(chan StatusResponse, 32),
		broadcastReset:    make(chan StatusResponse, 8),
		broadcastSettings: make(chan settingsPayload, 8),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastHistory:
			h.fanOut("history", payload)
		case payload := <-h.broadcastStatus:
			h.fanOut("status", payload)
		case payload := <-h.broadcastReset:
			h.fanOut("reset", payload)
		case payload := <-h.broadcastSettings:
			h.fanOut("settings", payload)
		}
	}
}

func (h *Hub) PublishHistory(payload historyPayload) {
	select {
	case h.broadcastHistory <- payload:
	default:
		log.Warn().Msg("history broadcast dropped")
	}
}

func (h *Hub) PublishStatus(payload StatusResponse) {
	select {
	case h.broadcastStatus <- payload:
	default:
		log.Warn().Msg("status broadcast dropped")
	}
}

func (h *Hub) PublishReset(payload StatusResponse) {
	select {
	case h.broadcastReset <- payload:
	default:
		log.Warn().Msg("reset broadcast dropped")
	}
}

func (h *Hub) PublishSettings(payload settingsPayload) {
	select {
	case h.broadcastSettings <- payload:
	default:
		log.Warn().Msg("settings broadcast dropped")
	}
}

func (h *Hub) fanOut(kind string, payload any) {
	msg := wsMessage{Type: kind, Payload: mustMarshal(payload)}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// sendJSON drops the message when the client is not keeping up.
func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/valarcon42madrid/Gomoku/internal/board"
	"github.com/valarcon42madrid/Gomoku/internal/config"
	"github.com/valarcon42madrid/Gomoku/internal/game"
)

// Server exposes one local game over HTTP and websocket.
type Server struct {
	controller   *game.Controller
	config       *config.Store
	hub          *Hub
	router       chi.Router
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

type Option func(*Server)

// WithPingInterval sets the idle time after which websocket clients get a
// ping message.
func WithPingInterval(interval time.Duration) Option {
	return func(s *Server) {
		if interval > 0 {
			s.pingInterval = interval
		}
	}
}

func New(controller *game.Controller, store *config.Store, opts ...Option) *Server {
	s := &Server{
		controller:   controller,
		config:       store,
		hub:          NewHub(),
		pingInterval: wsIdlePingInterval,
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// Run broadcasts hub events and ticks the game until ctx is done.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx.Done())

	ticker := time.NewTicker(s.config.Get().TickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	if !s.controller.Tick() {
		return
	}
	if entry, ok := s.controller.LatestHistoryEntry(); ok {
		s.hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	s.hub.PublishStatus(s.status())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.status())
	})
	r.Post("/api/start", s.handleStart)
	r.Post("/api/stop", s.handleStop)
	r.Post("/api/settings", s.handleSettings)
	r.Post("/api/move", s.handleMove)
	r.Get("/ws/", s.serveWS)
	return r
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Settings SettingsDTO `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	settings, err := settingsFromDTO(payload.Settings, game.SettingsFromConfig(s.config.Get()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.controller.StartGame(settings)
	status := s.status()
	writeJSON(w, http.StatusOK, status)
	s.hub.PublishReset(status)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.controller.Reset(s.controller.Settings())
	status := s.status()
	writeJSON(w, http.StatusOK, status)
	s.hub.PublishReset(status)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Settings *SettingsDTO   `json:"settings"`
		Config   *config.Config `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Config != nil {
		if err := s.config.Update(*payload.Config); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if payload.Settings != nil {
		settings, err := settingsFromDTO(*payload.Settings, s.controller.Settings())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.controller.UpdateSettings(settings, false)
	}
	s.hub.PublishSettings(settingsPayload{
		Settings: settingsToDTO(s.controller.Settings()),
		Config:   s.config.Get(),
	})
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var payload apiMove
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	applied, reason := s.controller.ApplyHumanMove(board.NewMove(payload.Row, payload.Col))
	if !applied {
		writeError(w, http.StatusBadRequest, reason)
		return
	}
	if entry, ok := s.controller.LatestHistoryEntry(); ok {
		s.hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	status := s.status()
	s.hub.PublishStatus(status)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(s.status())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, s.pingInterval); err != nil {
			log.Debug().Err(err).Msg("websocket writer stopped")
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "request_status" {
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(s.status())})
		}
	}
}

func (s *Server) status() StatusResponse {
	return statusFromSnapshot(s.controller.Snapshot(), s.controller.History(), s.config.Get())
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

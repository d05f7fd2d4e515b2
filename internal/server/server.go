// Package server exposes a game over HTTP and pushes its events to
// WebSocket clients.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hailam/chessvariant/internal/board"
	"github.com/hailam/chessvariant/internal/game"
)

// TickInterval is how often the game is ticked to pick up the Computer's move.
const TickInterval = 50 * time.Millisecond

// Server serves one game. The hub passed to New must be the listener the
// game was created with.
type Server struct {
	game   *game.Game
	hub    *Hub
	router chi.Router

	mu      sync.Mutex
	session string
}

// New creates a server for g with a fresh session id.
func New(g *game.Game, hub *Hub) *Server {
	s := &Server{
		game:    g,
		hub:     hub,
		session: uuid.NewString(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run delivers hub messages and ticks the game until ctx ends.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx.Done())

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.game.Update()
		}
	}
}

// Session returns the id of the current game.
func (s *Server) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.state())
	})

	r.Post("/api/click", func(w http.ResponseWriter, r *http.Request) {
		var payload positionDTO
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		pos, ok := payload.position()
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "position off the board"})
			return
		}
		s.game.NotifySquareClicked(pos)
		writeJSON(w, http.StatusOK, s.state())
	})

	r.Post("/api/new", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.session = uuid.NewString()
		s.mu.Unlock()
		s.game.Reset()
		writeJSON(w, http.StatusOK, s.state())
	})

	r.Get("/api/moves", func(w http.ResponseWriter, r *http.Request) {
		x, errX := strconv.Atoi(r.URL.Query().Get("x"))
		y, errY := strconv.Atoi(r.URL.Query().Get("y"))
		if errX != nil || errY != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid position"})
			return
		}
		pos, ok := positionDTO{X: x, Y: y}.position()
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "position off the board"})
			return
		}
		writeJSON(w, http.StatusOK, movesToDTO(s.game.MovesFrom(pos)))
	})

	r.Get("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toSettingsDTO(s.game.Limits()))
	})

	r.Put("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Depth != nil {
			s.game.SetSearchDepth(*payload.Depth)
		}
		if payload.SwitchProbability != nil {
			s.game.SetSwitchProbability(*payload.SwitchProbability)
		}
		settings := toSettingsDTO(s.game.Limits())
		s.hub.Publish("settings", settings)
		writeJSON(w, http.StatusOK, settings)
	})

	r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.game.Stats()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, toStatsResponse(stats))
	})

	r.Get("/ws", s.serveWS)

	return r
}

func (s *Server) state() stateResponse {
	st := s.game.State()

	resp := stateResponse{
		Session:  s.Session(),
		Value:    st.Board.Value(),
		Status:   st.Status.String(),
		Thinking: st.Thinking,
		Settings: toSettingsDTO(st.Limits),
		History:  movesToDTO(st.History),
	}
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			resp.Board[x][y] = int(st.Board.Piece(board.NewPosition(x, y)))
		}
	}
	if st.HasSelection {
		sel := toPositionDTO(st.Selection)
		resp.Selection = &sel
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

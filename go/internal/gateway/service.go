// Package gateway exposes the trivia backend over HTTP: a small REST
// surface for game CRUD and answers, server-sent events for progress
// watching, and a WebSocket feed relaying the same stream plus lifecycle
// events.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game"
	"github.com/codingfighters/trivia/go/internal/game/broadcast"
	"github.com/codingfighters/trivia/go/internal/game/driver"
)

// Service wires the HTTP surface to the game app, the driver registry and
// the broadcast hub.
type Service struct {
	app     *game.App
	driver  *driver.Registry
	hub     *broadcast.Hub
	connMgr *ConnectionManager
	baseCtx context.Context
}

// NewService creates the gateway service. baseCtx bounds the lifetime of
// game runners started through the API; it should be the process context,
// not a request context.
func NewService(baseCtx context.Context, app *game.App, registry *driver.Registry, hub *broadcast.Hub, connMgr *ConnectionManager) *Service {
	return &Service{
		app:     app,
		driver:  registry,
		hub:     hub,
		connMgr: connMgr,
		baseCtx: baseCtx,
	}
}

// RegisterRoutes attaches all game routes to the mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /game", s.handleCreateGame)
	mux.HandleFunc("GET /games", s.handleListOpenGames)
	mux.HandleFunc("GET /game/{id}", s.handleGetGame)
	mux.HandleFunc("PATCH /game/{id}", s.handleStartGame)
	mux.HandleFunc("POST /game/{id}/users/{user}", s.handleRegisterPlayer)
	mux.HandleFunc("POST /game/{id}/progress/{answer}", s.handleSubmitAnswer)
	mux.HandleFunc("GET /game/{id}/answers", s.handleListAnswers)
	mux.HandleFunc("GET /game/{id}/progress", s.handleProgressStream)
	mux.HandleFunc("GET /game/{id}/ws", s.handleWebSocket)
}

type createGameRequest struct {
	Topics        []string `json:"topics"`
	QuestionCount int      `json:"question_count"`
	IsPrivate     bool     `json:"is_private"`
	Creator       *string  `json:"creator,omitempty"`
	Users         []string `json:"users,omitempty"`
}

func (s *Service) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.app.CreateGame(r.Context(), game.CreateGameRequest{
		Topics:        req.Topics,
		QuestionCount: req.QuestionCount,
		IsPrivate:     req.IsPrivate,
		Creator:       req.Creator,
		Users:         req.Users,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleListOpenGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.app.ListOpenGames(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *Service) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	g, err := s.app.GetGame(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// handleStartGame kicks off the session driver for the game. The runner is
// bound to the process context so it outlives this request.
func (s *Service) handleStartGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	if err := s.driver.Start(s.baseCtx, gameID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}
	player := r.PathValue("user")

	g, err := s.app.RegisterPlayer(r.Context(), gameID, player)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// handleSubmitAnswer records an answer. The chosen option rides in the
// path, the player name in the body, and an optional question_index query
// parameter lets clients reject their own late submissions.
func (s *Service) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	choice, err := strconv.Atoi(r.PathValue("answer"))
	if err != nil {
		http.Error(w, "invalid answer", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	player := strings.TrimSpace(string(body))

	var claimedIndex *int
	if raw := r.URL.Query().Get("question_index"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid question_index", http.StatusBadRequest)
			return
		}
		claimedIndex = &idx
	}

	answer, err := s.app.SubmitAnswer(r.Context(), gameID, player, choice, claimedIndex)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, answer)
}

func (s *Service) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	answers, err := s.app.ListAnswers(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, answers)
}

func (s *Service) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrProgressNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, game.ErrGameLocked):
		http.Error(w, err.Error(), http.StatusLocked)
	case errors.Is(err, game.ErrEmptyQuestionPool):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrStaleAnswer):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, game.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

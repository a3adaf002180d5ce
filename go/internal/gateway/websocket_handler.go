package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game/broadcast"
	"github.com/codingfighters/trivia/go/internal/models"
)

// wsFrame is the envelope written to WebSocket clients for hub events. The
// lifecycle events relayed by the EventConsumer keep their own envelope.
type wsFrame struct {
	Kind     broadcast.Kind       `json:"kind"`
	Roster   []string             `json:"roster,omitempty"`
	Progress *models.GameProgress `json:"progress,omitempty"`
}

// handleWebSocket upgrades the request and feeds the client the same event
// sequence as the SSE stream, plus any lifecycle events arriving via NATS.
func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	// In production the player would come from a session token.
	player := r.URL.Query().Get("player")
	if player == "" {
		player = "anonymous"
	}

	ctx, cancel := context.WithCancel(s.baseCtx)
	events, err := s.hub.Subscribe(ctx, gameID)
	if err != nil {
		cancel()
		s.writeError(w, err)
		return
	}

	conn, err := s.connMgr.UpgradeConnection(w, r, player, gameID)
	if err != nil {
		cancel()
		log.Error().
			Err(err).
			Str("game_id", gameID.String()).
			Msg("failed to upgrade WebSocket connection")
		return
	}

	go s.forwardHubEvents(cancel, events, conn)
}

// forwardHubEvents copies hub events onto one connection until the stream
// ends or the connection goes away. A failed send means the client is gone
// or hopelessly slow; the subscription is cancelled either way.
func (s *Service) forwardHubEvents(cancel context.CancelFunc, events <-chan broadcast.Event, conn *Connection) {
	defer cancel()

	for event := range events {
		payload, err := json.Marshal(wsFrame{
			Kind:     event.Kind,
			Roster:   event.Roster,
			Progress: event.Progress,
		})
		if err != nil {
			log.Error().Err(err).Str("connection_id", conn.ID).Msg("failed to marshal ws frame")
			continue
		}
		if !s.connMgr.send(conn, payload) {
			log.Debug().
				Str("connection_id", conn.ID).
				Str("game_id", conn.GameID.String()).
				Msg("dropping hub subscription, connection gone")
			return
		}
	}
}

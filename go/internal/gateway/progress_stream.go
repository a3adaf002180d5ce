package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game/broadcast"
)

// handleProgressStream serves a game's progress as server-sent events.
// Before the game starts each frame is "NOT STARTED" plus the roster; once
// running, frames carry the progress snapshot as JSON; a final "END" frame
// closes the stream.
func (s *Service) handleProgressStream(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.gameID(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.hub.Subscribe(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	log.Debug().Str("game_id", gameID.String()).Msg("progress stream opened")

	for event := range events {
		frame, err := sseFrame(event)
		if err != nil {
			log.Error().Err(err).Str("game_id", gameID.String()).Msg("failed to encode stream frame")
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
			log.Debug().Str("game_id", gameID.String()).Msg("progress stream client gone")
			return
		}
		flusher.Flush()
	}

	log.Debug().Str("game_id", gameID.String()).Msg("progress stream closed")
}

func sseFrame(event broadcast.Event) (string, error) {
	switch event.Kind {
	case broadcast.KindNotStarted:
		roster, err := json.Marshal(event.Roster)
		if err != nil {
			return "", err
		}
		return "NOT STARTED" + string(roster), nil
	case broadcast.KindProgress:
		payload, err := json.Marshal(event.Progress)
		if err != nil {
			return "", err
		}
		return string(payload), nil
	case broadcast.KindEnd:
		return "END", nil
	default:
		return "", fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

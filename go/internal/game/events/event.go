package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameEvent is the envelope published to the event stream for every game
// lifecycle transition.
type GameEvent struct {
	ID        uuid.UUID       `json:"event_id"`
	GameID    uuid.UUID       `json:"game_id"`
	Type      EventType       `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewGameEvent wraps a payload into an envelope, assigning a fresh event id.
func NewGameEvent(gameID uuid.UUID, eventType EventType, payload interface{}) (GameEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return GameEvent{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return GameEvent{
		ID:        uuid.New(),
		GameID:    gameID,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payloadBytes,
	}, nil
}

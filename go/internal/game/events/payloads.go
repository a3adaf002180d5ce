package events

import (
	"time"
)

// Event payload types shared between the driver, stream and gateway packages

// EventType identifies a game lifecycle event.
type EventType string

const (
	EventTypeGameStarted      EventType = "GameStarted"
	EventTypeQuestionAdvanced EventType = "QuestionAdvanced"
	EventTypeGameEnded        EventType = "GameEnded"
)

// GameStartedPayload is the payload for a GameStarted event
type GameStartedPayload struct {
	GameID          string    `json:"game_id"`
	QuestionCount   int       `json:"question_count"`
	QuestionSeconds int       `json:"question_seconds"`
	Topics          []string  `json:"topics"`
	StartedAt       time.Time `json:"started_at"`
}

// QuestionAdvancedPayload is the payload for a QuestionAdvanced event
type QuestionAdvancedPayload struct {
	GameID          string    `json:"game_id"`
	QuestionIndex   int       `json:"question_index"`
	QuestionCount   int       `json:"question_count"`
	QuestionSeconds int       `json:"question_seconds"`
	AdvancedAt      time.Time `json:"advanced_at"`
}

// GameEndedPayload is the payload for a GameEnded event
type GameEndedPayload struct {
	GameID        string    `json:"game_id"`
	QuestionCount int       `json:"question_count"`
	EndedAt       time.Time `json:"ended_at"`
}

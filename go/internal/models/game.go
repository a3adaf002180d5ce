package models

import (
	"time"

	"github.com/google/uuid"
)

// Game represents one trivia game document: its topic selection, roster
// and lifecycle flag. Progress for a started game lives in GameProgress.
type Game struct {
	ID            uuid.UUID `json:"id"`
	Topics        []string  `json:"topics"`
	QuestionCount int       `json:"question_count"`
	IsPrivate     bool      `json:"is_private"`
	IsStarted     bool      `json:"is_started"`
	Creator       *string   `json:"creator,omitempty"`
	Users         []string  `json:"users"`
	CreatedAt     time.Time `json:"created_at"`
}

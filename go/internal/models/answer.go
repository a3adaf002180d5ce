package models

import (
	"time"

	"github.com/google/uuid"
)

// GameAnswer is a player's answer to one question of a game. The correct
// choice and question content are captured at submission time so results
// stay stable even if the catalog changes. At most one answer exists per
// (game, player, question index); re-submission overwrites.
type GameAnswer struct {
	GameID        uuid.UUID `json:"game_id"`
	Player        string    `json:"player"`
	QuestionIndex int       `json:"question_index"`
	Choice        int       `json:"choice"`
	CorrectChoice int       `json:"correct_choice"`
	Question      Question  `json:"question"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

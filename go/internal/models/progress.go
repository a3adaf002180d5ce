package models

import (
	"github.com/google/uuid"
)

// GameProgress is the authoritative mutable record for one running game.
// Exactly one driver goroutine owns and mutates it; everyone else reads
// snapshots. The persisted row is always replaced whole, so readers never
// observe a partially applied tick.
type GameProgress struct {
	GameID           uuid.UUID `json:"game_id"`
	CurrentQuestion  int       `json:"current_question"` // 0-based, monotonically non-decreasing
	QuestionCount    int       `json:"question_count"`   // fixed at game start
	Question         Question  `json:"question"`         // copy of the question currently open
	RemainingSeconds int       `json:"remaining_seconds"`
}

// Terminal reports whether the game has exhausted its question sequence.
// The driver's final persist sets CurrentQuestion == QuestionCount.
func (p GameProgress) Terminal() bool {
	return p.CurrentQuestion >= p.QuestionCount
}

package models

// Question is a single trivia question from the static catalog.
// Questions carry no identity of their own; progress and answer records
// embed a full copy so the content shown to players never changes under them.
type Question struct {
	Text          string    `json:"text"`
	Options       [4]string `json:"options"`
	CorrectOption int       `json:"correct_option"` // 1-based index into Options
	Topic         string    `json:"topic"`
}

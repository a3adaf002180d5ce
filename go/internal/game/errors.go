package game

import "errors"

// ErrGameNotFound is returned when no game exists for the given id
var ErrGameNotFound = errors.New("game not found")

// ErrProgressNotFound is returned when a game has no progress record yet
var ErrProgressNotFound = errors.New("game progress not found")

// ErrGameLocked is returned when answers are requested before the game finished
var ErrGameLocked = errors.New("game is still in progress")

// ErrEmptyQuestionPool is returned when a game's topics resolve to no questions
var ErrEmptyQuestionPool = errors.New("no questions available for selected topics")

// ErrStaleAnswer is returned when a submission targets a question that
// already closed
var ErrStaleAnswer = errors.New("question already closed")

// ErrInvalidRequest is wrapped by the app validators so transports can map
// bad input with errors.Is instead of inspecting messages
var ErrInvalidRequest = errors.New("invalid request")

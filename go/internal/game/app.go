package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/models"
)

// GameRepository defines what the app layer needs from the game repository
type GameRepository interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListOpenGames(ctx context.Context) ([]models.Game, error)
	AddUserToGame(ctx context.Context, id uuid.UUID, user string) (*models.Game, error)
	GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error)
	UpsertAnswer(ctx context.Context, answer models.GameAnswer) (*models.GameAnswer, error)
	ListAnswers(ctx context.Context, gameID uuid.UUID) ([]models.GameAnswer, error)
}

// ProgressReader yields the freshest available snapshot of a running game.
// The driver registry implements it with the in-memory copy; the app falls
// back to the store when no live runner exists (e.g. after a restart).
type ProgressReader interface {
	Snapshot(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, bool)
}

// App handles trivia game business logic
type App struct {
	repo     GameRepository
	progress ProgressReader
}

// NewApp creates a new game App. progress may be nil; snapshots then come
// from the store only.
func NewApp(repo GameRepository, progress ProgressReader) *App {
	return &App{
		repo:     repo,
		progress: progress,
	}
}

// CreateGame creates a new game document with validation
func (a *App) CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if err := a.validateCreateGameRequest(req); err != nil {
		return nil, err
	}

	game, err := a.repo.CreateGame(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Strs("topics", game.Topics).
		Int("question_count", game.QuestionCount).
		Msg("created game")
	return game, nil
}

// GetGame retrieves a game by ID
func (a *App) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := a.repo.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// ListOpenGames retrieves all public games that have not started yet
func (a *App) ListOpenGames(ctx context.Context) ([]models.Game, error) {
	games, err := a.repo.ListOpenGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}
	return games, nil
}

// RegisterPlayer adds a player to a game's roster if not already present
func (a *App) RegisterPlayer(ctx context.Context, gameID uuid.UUID, player string) (*models.Game, error) {
	if player == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidRequest)
	}

	game, err := a.repo.AddUserToGame(ctx, gameID, player)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	log.Info().
		Str("game_id", gameID.String()).
		Str("player", player).
		Int("roster_size", len(game.Users)).
		Msg("player registered")
	return game, nil
}

// GetProgress returns the current progress snapshot for a game, preferring
// the live in-memory copy over a store read.
func (a *App) GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error) {
	if a.progress != nil {
		if snapshot, ok := a.progress.Snapshot(ctx, gameID); ok {
			return snapshot, nil
		}
	}

	progress, err := a.repo.GetProgress(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// SubmitAnswer records a player's answer against the question open at read
// time. claimedIndex, when non-nil, is the question index the caller saw
// when answering; a mismatch with the live index means the question has
// closed and the submission is rejected as stale. Re-submission for the
// same question overwrites the previous answer.
func (a *App) SubmitAnswer(ctx context.Context, gameID uuid.UUID, player string, choice int, claimedIndex *int) (*models.GameAnswer, error) {
	if player == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidRequest)
	}
	if choice < 1 || choice > 4 {
		return nil, fmt.Errorf("%w: choice must be between 1 and 4, got %d", ErrInvalidRequest, choice)
	}

	progress, err := a.GetProgress(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if claimedIndex != nil && *claimedIndex != progress.CurrentQuestion {
		return nil, fmt.Errorf("%w: submitted for question %d, current is %d",
			ErrStaleAnswer, *claimedIndex, progress.CurrentQuestion)
	}

	answer, err := a.repo.UpsertAnswer(ctx, models.GameAnswer{
		GameID:        gameID,
		Player:        player,
		QuestionIndex: progress.CurrentQuestion,
		Choice:        choice,
		CorrectChoice: progress.Question.CorrectOption,
		Question:      progress.Question,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	log.Debug().
		Str("game_id", gameID.String()).
		Str("player", player).
		Int("question_index", answer.QuestionIndex).
		Msg("answer recorded")
	return answer, nil
}

// ListAnswers returns all recorded answers for a finished game. Until the
// game reaches its terminal state the result set is locked.
func (a *App) ListAnswers(ctx context.Context, gameID uuid.UUID) ([]models.GameAnswer, error) {
	progress, err := a.GetProgress(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !progress.Terminal() {
		return nil, ErrGameLocked
	}

	answers, err := a.repo.ListAnswers(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

// Validation methods

func (a *App) validateCreateGameRequest(req CreateGameRequest) error {
	if len(req.Topics) == 0 {
		return fmt.Errorf("%w: at least one topic is required", ErrInvalidRequest)
	}
	if req.QuestionCount <= 0 {
		return fmt.Errorf("%w: question_count must be greater than 0", ErrInvalidRequest)
	}
	return nil
}

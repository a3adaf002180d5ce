package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/codingfighters/trivia/go/internal/game/db"
	"github.com/codingfighters/trivia/go/internal/models"
	"github.com/codingfighters/trivia/go/internal/sqlutil"
)

type Repository struct {
	queries  *db.Queries
	database *sql.DB
}

func NewRepository(queries *db.Queries, database *sql.DB) *Repository {
	return &Repository{
		queries:  queries,
		database: database,
	}
}

type CreateGameRequest struct {
	ID            uuid.UUID `json:"id"`
	Topics        []string  `json:"topics"`
	QuestionCount int       `json:"question_count"`
	IsPrivate     bool      `json:"is_private"`
	IsStarted     bool      `json:"is_started"`
	Creator       *string   `json:"creator"`
	Users         []string  `json:"users"`
}

func (r *Repository) CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, error) {
	users := req.Users
	if users == nil {
		users = []string{}
	}

	game, err := r.queries.CreateGame(ctx, db.CreateGameParams{
		ID:            req.ID,
		Topics:        req.Topics,
		QuestionCount: int32(req.QuestionCount),
		IsPrivate:     req.IsPrivate,
		IsStarted:     req.IsStarted,
		Creator:       sqlutil.ToSqlString(req.Creator),
		Users:         users,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return r.dbGameToModel(game), nil
}

func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := r.queries.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return r.dbGameToModel(game), nil
}

func (r *Repository) ListOpenGames(ctx context.Context) ([]models.Game, error) {
	rows, err := r.queries.ListOpenGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}

	games := make([]models.Game, len(rows))
	for i, row := range rows {
		games[i] = *r.dbGameToModel(row)
	}
	return games, nil
}

func (r *Repository) SetGameStarted(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := r.queries.SetGameStarted(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark game started: %w", err)
	}

	return r.dbGameToModel(game), nil
}

// AddUserToGame appends a player to the roster if not already present.
// Read and write run inside one transaction so two concurrent joins
// cannot drop each other's entry.
func (r *Repository) AddUserToGame(ctx context.Context, id uuid.UUID, user string) (*models.Game, error) {
	var updated db.Game
	err := sqlutil.Run(ctx, r.database,
		func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			game, err := q.GetGame(ctx, id)
			if err != nil {
				return err
			}
			for _, u := range game.Users {
				if u == user {
					updated = game
					return nil
				}
			}
			updated, err = q.UpdateGameUsers(ctx, db.UpdateGameUsersParams{
				ID:    id,
				Users: append(game.Users, user),
			})
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add user to game: %w", err)
	}

	return r.dbGameToModel(updated), nil
}

func (r *Repository) CreateProgress(ctx context.Context, progress models.GameProgress) (*models.GameProgress, error) {
	questionBytes, err := json.Marshal(progress.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question content: %w", err)
	}

	row, err := r.queries.CreateGameProgress(ctx, db.CreateGameProgressParams{
		GameID:           progress.GameID,
		CurrentQuestion:  int32(progress.CurrentQuestion),
		QuestionCount:    int32(progress.QuestionCount),
		Question:         questionBytes,
		RemainingSeconds: int32(progress.RemainingSeconds),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game progress: %w", err)
	}

	return r.dbProgressToModel(row)
}

// ReplaceProgress overwrites the whole progress row. Last writer wins;
// the driver is the only writer for a given game id.
func (r *Repository) ReplaceProgress(ctx context.Context, progress models.GameProgress) (*models.GameProgress, error) {
	questionBytes, err := json.Marshal(progress.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question content: %w", err)
	}

	row, err := r.queries.ReplaceGameProgress(ctx, db.ReplaceGameProgressParams{
		GameID:           progress.GameID,
		CurrentQuestion:  int32(progress.CurrentQuestion),
		QuestionCount:    int32(progress.QuestionCount),
		Question:         questionBytes,
		RemainingSeconds: int32(progress.RemainingSeconds),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace game progress: %w", err)
	}

	return r.dbProgressToModel(row)
}

// DeleteProgress removes a game's progress row. Used to roll back a
// partially started game so a later start attempt can create it afresh.
func (r *Repository) DeleteProgress(ctx context.Context, gameID uuid.UUID) error {
	if err := r.queries.DeleteGameProgress(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game progress: %w", err)
	}
	return nil
}

func (r *Repository) GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error) {
	row, err := r.queries.GetGameProgress(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game progress: %w", err)
	}

	return r.dbProgressToModel(row)
}

func (r *Repository) UpsertAnswer(ctx context.Context, answer models.GameAnswer) (*models.GameAnswer, error) {
	questionBytes, err := json.Marshal(answer.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question content: %w", err)
	}

	row, err := r.queries.UpsertGameAnswer(ctx, db.UpsertGameAnswerParams{
		GameID:        answer.GameID,
		Player:        answer.Player,
		QuestionIndex: int32(answer.QuestionIndex),
		Choice:        int32(answer.Choice),
		CorrectChoice: int32(answer.CorrectChoice),
		Question:      pqtype.NullRawMessage{RawMessage: questionBytes, Valid: len(questionBytes) > 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert game answer: %w", err)
	}

	return r.dbAnswerToModel(row)
}

func (r *Repository) ListAnswers(ctx context.Context, gameID uuid.UUID) ([]models.GameAnswer, error) {
	rows, err := r.queries.ListGameAnswers(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game answers: %w", err)
	}

	answers := make([]models.GameAnswer, 0, len(rows))
	for _, row := range rows {
		answer, err := r.dbAnswerToModel(row)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *answer)
	}
	return answers, nil
}

// Helper functions to convert DB rows to models

func (r *Repository) dbGameToModel(dbGame db.Game) *models.Game {
	return &models.Game{
		ID:            dbGame.ID,
		Topics:        dbGame.Topics,
		QuestionCount: int(dbGame.QuestionCount),
		IsPrivate:     dbGame.IsPrivate,
		IsStarted:     dbGame.IsStarted,
		Creator:       sqlutil.FromSqlStringPtr(dbGame.Creator),
		Users:         dbGame.Users,
		CreatedAt:     dbGame.CreatedAt,
	}
}

func (r *Repository) dbProgressToModel(row db.GameProgress) (*models.GameProgress, error) {
	var question models.Question
	if err := json.Unmarshal(row.Question, &question); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question content: %w", err)
	}

	return &models.GameProgress{
		GameID:           row.GameID,
		CurrentQuestion:  int(row.CurrentQuestion),
		QuestionCount:    int(row.QuestionCount),
		Question:         question,
		RemainingSeconds: int(row.RemainingSeconds),
	}, nil
}

func (r *Repository) dbAnswerToModel(row db.GameAnswer) (*models.GameAnswer, error) {
	var question models.Question
	if row.Question.Valid {
		if err := json.Unmarshal(row.Question.RawMessage, &question); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question content: %w", err)
		}
	}

	return &models.GameAnswer{
		GameID:        row.GameID,
		Player:        row.Player,
		QuestionIndex: int(row.QuestionIndex),
		Choice:        int(row.Choice),
		CorrectChoice: int(row.CorrectChoice),
		Question:      question,
		SubmittedAt:   row.SubmittedAt,
	}, nil
}

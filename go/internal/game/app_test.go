package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/codingfighters/trivia/go/internal/models"
)

type fakeRepo struct {
	games    map[uuid.UUID]*models.Game
	progress map[uuid.UUID]*models.GameProgress
	answers  map[string]models.GameAnswer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		games:    make(map[uuid.UUID]*models.Game),
		progress: make(map[uuid.UUID]*models.GameProgress),
		answers:  make(map[string]models.GameAnswer),
	}
}

func answerKey(a models.GameAnswer) string {
	return fmt.Sprintf("%s|%s|%d", a.GameID, a.Player, a.QuestionIndex)
}

func (r *fakeRepo) CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, error) {
	g := &models.Game{
		ID:            req.ID,
		Topics:        req.Topics,
		QuestionCount: req.QuestionCount,
		IsPrivate:     req.IsPrivate,
		Creator:       req.Creator,
		Users:         req.Users,
		CreatedAt:     time.Now(),
	}
	r.games[g.ID] = g
	return g, nil
}

func (r *fakeRepo) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (r *fakeRepo) ListOpenGames(ctx context.Context) ([]models.Game, error) {
	var open []models.Game
	for _, g := range r.games {
		if !g.IsPrivate && !g.IsStarted {
			open = append(open, *g)
		}
	}
	return open, nil
}

func (r *fakeRepo) AddUserToGame(ctx context.Context, id uuid.UUID, user string) (*models.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	for _, u := range g.Users {
		if u == user {
			return g, nil
		}
	}
	g.Users = append(g.Users, user)
	return g, nil
}

func (r *fakeRepo) GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error) {
	p, ok := r.progress[gameID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (r *fakeRepo) UpsertAnswer(ctx context.Context, answer models.GameAnswer) (*models.GameAnswer, error) {
	answer.SubmittedAt = time.Now()
	r.answers[answerKey(answer)] = answer
	return &answer, nil
}

func (r *fakeRepo) ListAnswers(ctx context.Context, gameID uuid.UUID) ([]models.GameAnswer, error) {
	var out []models.GameAnswer
	for _, a := range r.answers {
		if a.GameID == gameID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeReader serves a fixed live snapshot, standing in for the driver.
type fakeReader struct {
	snapshot *models.GameProgress
}

func (f *fakeReader) Snapshot(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, bool) {
	if f.snapshot == nil || f.snapshot.GameID != gameID {
		return nil, false
	}
	copied := *f.snapshot
	return &copied, true
}

func question(text string, correct int) models.Question {
	return models.Question{
		Text:          text,
		Options:       [4]string{"a", "b", "c", "d"},
		CorrectOption: correct,
		Topic:         "Java",
	}
}

func TestCreateGameAssignsID(t *testing.T) {
	app := NewApp(newFakeRepo(), nil)

	g, err := app.CreateGame(context.Background(), CreateGameRequest{
		Topics:        []string{"Java"},
		QuestionCount: 5,
	})
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	if g.ID == uuid.Nil {
		t.Fatal("created game has nil id")
	}
}

func TestCreateGameValidation(t *testing.T) {
	app := NewApp(newFakeRepo(), nil)

	if _, err := app.CreateGame(context.Background(), CreateGameRequest{QuestionCount: 5}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("CreateGame() without topics error = %v, want ErrInvalidRequest", err)
	}
	if _, err := app.CreateGame(context.Background(), CreateGameRequest{Topics: []string{"Java"}}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("CreateGame() with zero question count error = %v, want ErrInvalidRequest", err)
	}
}

func TestGetGameNotFound(t *testing.T) {
	app := NewApp(newFakeRepo(), nil)

	_, err := app.GetGame(context.Background(), uuid.New())
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("GetGame() error = %v, want ErrGameNotFound", err)
	}
}

func TestRegisterPlayer(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo, nil)

	g, err := app.CreateGame(context.Background(), CreateGameRequest{
		Topics:        []string{"Java"},
		QuestionCount: 3,
	})
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}

	if _, err := app.RegisterPlayer(context.Background(), g.ID, ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("RegisterPlayer() with empty name error = %v, want ErrInvalidRequest", err)
	}

	updated, err := app.RegisterPlayer(context.Background(), g.ID, "alice")
	if err != nil {
		t.Fatalf("RegisterPlayer() error = %v", err)
	}
	// Joining twice must not duplicate the roster entry.
	updated, err = app.RegisterPlayer(context.Background(), g.ID, "alice")
	if err != nil {
		t.Fatalf("RegisterPlayer() error = %v", err)
	}
	if len(updated.Users) != 1 || updated.Users[0] != "alice" {
		t.Fatalf("roster = %v, want [alice]", updated.Users)
	}

	if _, err := app.RegisterPlayer(context.Background(), uuid.New(), "bob"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("RegisterPlayer() on unknown game error = %v, want ErrGameNotFound", err)
	}
}

func TestGetProgressPrefersLiveSnapshot(t *testing.T) {
	repo := newFakeRepo()
	gameID := uuid.New()
	repo.progress[gameID] = &models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  0,
		QuestionCount:    3,
		RemainingSeconds: 15,
	}
	live := &models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  1,
		QuestionCount:    3,
		RemainingSeconds: 8,
	}
	app := NewApp(repo, &fakeReader{snapshot: live})

	p, err := app.GetProgress(context.Background(), gameID)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if p.CurrentQuestion != 1 || p.RemainingSeconds != 8 {
		t.Fatalf("progress = (%d, %ds), want the live snapshot (1, 8s)",
			p.CurrentQuestion, p.RemainingSeconds)
	}
}

func TestGetProgressFallsBackToStore(t *testing.T) {
	repo := newFakeRepo()
	gameID := uuid.New()
	repo.progress[gameID] = &models.GameProgress{GameID: gameID, CurrentQuestion: 2, QuestionCount: 3}
	app := NewApp(repo, &fakeReader{})

	p, err := app.GetProgress(context.Background(), gameID)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if p.CurrentQuestion != 2 {
		t.Fatalf("progress question = %d, want 2", p.CurrentQuestion)
	}

	if _, err := app.GetProgress(context.Background(), uuid.New()); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("GetProgress() on unknown game error = %v, want ErrProgressNotFound", err)
	}
}

func TestSubmitAnswerCapturesQuestionAtReadTime(t *testing.T) {
	repo := newFakeRepo()
	gameID := uuid.New()
	live := &models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  1,
		QuestionCount:    3,
		Question:         question("q1", 3),
		RemainingSeconds: 10,
	}
	app := NewApp(repo, &fakeReader{snapshot: live})

	answer, err := app.SubmitAnswer(context.Background(), gameID, "alice", 2, nil)
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if answer.QuestionIndex != 1 {
		t.Fatalf("answer index = %d, want 1", answer.QuestionIndex)
	}
	if answer.CorrectChoice != 3 {
		t.Fatalf("captured correct choice = %d, want 3", answer.CorrectChoice)
	}
	if answer.Question.Text != "q1" {
		t.Fatalf("captured question = %q, want q1", answer.Question.Text)
	}
}

func TestSubmitAnswerOverwrites(t *testing.T) {
	repo := newFakeRepo()
	gameID := uuid.New()
	live := &models.GameProgress{
		GameID:          gameID,
		CurrentQuestion: 0,
		QuestionCount:   3,
		Question:        question("q0", 1),
	}
	app := NewApp(repo, &fakeReader{snapshot: live})

	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 2, nil); err != nil {
		t.Fatalf("first SubmitAnswer() error = %v", err)
	}
	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 4, nil); err != nil {
		t.Fatalf("second SubmitAnswer() error = %v", err)
	}

	if len(repo.answers) != 1 {
		t.Fatalf("stored %d answers, want 1 (overwrite)", len(repo.answers))
	}
	for _, a := range repo.answers {
		if a.Choice != 4 {
			t.Fatalf("stored choice = %d, want the later submission 4", a.Choice)
		}
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	gameID := uuid.New()
	app := NewApp(newFakeRepo(), &fakeReader{snapshot: &models.GameProgress{
		GameID:        gameID,
		QuestionCount: 3,
		Question:      question("q0", 1),
	}})

	if _, err := app.SubmitAnswer(context.Background(), gameID, "", 1, nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("SubmitAnswer() with empty player error = %v, want ErrInvalidRequest", err)
	}
	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 0, nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("SubmitAnswer() with choice 0 error = %v, want ErrInvalidRequest", err)
	}
	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 5, nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("SubmitAnswer() with choice 5 error = %v, want ErrInvalidRequest", err)
	}
}

func TestSubmitAnswerRejectsStaleClaim(t *testing.T) {
	gameID := uuid.New()
	app := NewApp(newFakeRepo(), &fakeReader{snapshot: &models.GameProgress{
		GameID:          gameID,
		CurrentQuestion: 2,
		QuestionCount:   5,
		Question:        question("q2", 1),
	}})

	stale := 1
	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 3, &stale); !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("SubmitAnswer() error = %v, want ErrStaleAnswer", err)
	}

	current := 2
	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 3, &current); err != nil {
		t.Fatalf("SubmitAnswer() with matching index error = %v", err)
	}
}

func TestListAnswersLockedUntilTerminal(t *testing.T) {
	repo := newFakeRepo()
	gameID := uuid.New()
	running := &models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  2,
		QuestionCount:    3,
		Question:         question("q2", 1),
		RemainingSeconds: 5,
	}
	app := NewApp(repo, &fakeReader{snapshot: running})

	if _, err := app.SubmitAnswer(context.Background(), gameID, "alice", 1, nil); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if _, err := app.ListAnswers(context.Background(), gameID); !errors.Is(err, ErrGameLocked) {
		t.Fatalf("ListAnswers() error = %v, want ErrGameLocked", err)
	}

	// Terminal record released by the driver: index == count.
	repo.progress[gameID] = &models.GameProgress{
		GameID:          gameID,
		CurrentQuestion: 3,
		QuestionCount:   3,
	}
	app = NewApp(repo, &fakeReader{})

	answers, err := app.ListAnswers(context.Background(), gameID)
	if err != nil {
		t.Fatalf("ListAnswers() after terminal error = %v", err)
	}
	if len(answers) != 1 || answers[0].Player != "alice" {
		t.Fatalf("answers = %v, want alice's single answer", answers)
	}
}

func TestListAnswersUnknownGame(t *testing.T) {
	app := NewApp(newFakeRepo(), nil)

	if _, err := app.ListAnswers(context.Background(), uuid.New()); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("ListAnswers() error = %v, want ErrProgressNotFound", err)
	}
}

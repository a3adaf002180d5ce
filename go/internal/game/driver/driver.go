// Package driver owns the authoritative progress of every running game.
// One runner goroutine per game holds the mutable record, advances it on a
// one-second clock and persists each tick before waiting for the next one.
// Everything outside the runner sees copies only.
package driver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game"
	"github.com/codingfighters/trivia/go/internal/game/events"
	"github.com/codingfighters/trivia/go/internal/game/pool"
	"github.com/codingfighters/trivia/go/internal/models"
)

// DefaultQuestionSeconds is how long each question stays open.
const DefaultQuestionSeconds = 20

// GameStore defines what the driver needs from the game repository
type GameStore interface {
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	SetGameStarted(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// ProgressStore defines what the driver needs from the progress repository
type ProgressStore interface {
	CreateProgress(ctx context.Context, progress models.GameProgress) (*models.GameProgress, error)
	ReplaceProgress(ctx context.Context, progress models.GameProgress) (*models.GameProgress, error)
	GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error)
	DeleteProgress(ctx context.Context, gameID uuid.UUID) error
}

// EventSink receives lifecycle events from runners. Sink errors are logged
// and never block ticking.
type EventSink interface {
	Publish(ctx context.Context, event events.GameEvent) error
}

// Config tunes the registry. Zero values fall back to defaults.
type Config struct {
	QuestionSeconds int
}

// Registry starts and tracks one runner per running game, addressed by
// game id. It is the only way other components reach a game's live state.
type Registry struct {
	games           GameStore
	store           ProgressStore
	sink            EventSink
	clock           clockwork.Clock
	questionSeconds int
	pick            func(n int) int

	mu      sync.Mutex
	runners map[uuid.UUID]*runner
}

// NewRegistry creates a driver registry using the real clock.
func NewRegistry(games GameStore, store ProgressStore, sink EventSink, cfg Config) *Registry {
	questionSeconds := cfg.QuestionSeconds
	if questionSeconds <= 0 {
		questionSeconds = DefaultQuestionSeconds
	}
	return &Registry{
		games:           games,
		store:           store,
		sink:            sink,
		clock:           clockwork.NewRealClock(),
		questionSeconds: questionSeconds,
		pick:            rand.Intn,
		runners:         make(map[uuid.UUID]*runner),
	}
}

// Start begins driving a game's progress. It is an idempotent ignore when
// the game is already running or already started. A game whose topics
// resolve to an empty question pool never starts and nothing is persisted
// for it.
func (r *Registry) Start(ctx context.Context, gameID uuid.UUID) error {
	r.mu.Lock()
	if _, running := r.runners[gameID]; running {
		r.mu.Unlock()
		log.Debug().Str("game_id", gameID.String()).Msg("game already running, ignoring start")
		return nil
	}
	r.mu.Unlock()

	g, err := r.games.GetGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game for start: %w", err)
	}
	if g.IsStarted {
		log.Debug().Str("game_id", gameID.String()).Msg("game already started, ignoring start")
		return nil
	}

	questions := pool.Resolve(g.Topics)
	if len(questions) == 0 {
		return fmt.Errorf("%w: topics %v", game.ErrEmptyQuestionPool, g.Topics)
	}

	initial := models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  0,
		QuestionCount:    g.QuestionCount,
		Question:         questions[r.pick(len(questions))],
		RemainingSeconds: r.questionSeconds,
	}
	if _, err := r.store.CreateProgress(ctx, initial); err != nil {
		return fmt.Errorf("failed to persist initial progress: %w", err)
	}
	if _, err := r.games.SetGameStarted(ctx, gameID); err != nil {
		// Roll the initial row back so a retried start does not collide
		// with it; the game stays startable after a transient outage.
		if delErr := r.store.DeleteProgress(ctx, gameID); delErr != nil {
			log.Error().
				Err(delErr).
				Str("game_id", gameID.String()).
				Msg("failed to roll back initial progress")
		}
		return fmt.Errorf("failed to mark game started: %w", err)
	}

	run := &runner{
		registry:  r,
		gameID:    gameID,
		questions: questions,
		progress:  initial,
	}

	r.mu.Lock()
	if _, raced := r.runners[gameID]; raced {
		r.mu.Unlock()
		return nil
	}
	r.runners[gameID] = run
	r.mu.Unlock()

	r.emit(ctx, gameID, events.EventTypeGameStarted, events.GameStartedPayload{
		GameID:          gameID.String(),
		QuestionCount:   g.QuestionCount,
		QuestionSeconds: r.questionSeconds,
		Topics:          g.Topics,
		StartedAt:       r.clock.Now(),
	})

	go run.run(ctx)

	log.Info().
		Str("game_id", gameID.String()).
		Int("question_count", g.QuestionCount).
		Int("pool_size", len(questions)).
		Msg("game started")
	return nil
}

// Snapshot returns a copy of the live in-memory progress for a game. The
// second return is false when no runner exists (not started, or finished
// and fully persisted), in which case callers read the store instead.
func (r *Registry) Snapshot(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, bool) {
	r.mu.Lock()
	run, ok := r.runners[gameID]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	run.mu.Lock()
	snapshot := run.progress
	run.mu.Unlock()
	return &snapshot, true
}

// Running reports whether a runner currently exists for the game.
func (r *Registry) Running(gameID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.runners[gameID]
	return ok
}

func (r *Registry) remove(gameID uuid.UUID) {
	r.mu.Lock()
	delete(r.runners, gameID)
	r.mu.Unlock()
}

func (r *Registry) emit(ctx context.Context, gameID uuid.UUID, eventType events.EventType, payload interface{}) {
	if r.sink == nil {
		return
	}
	event, err := events.NewGameEvent(gameID, eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("game_id", gameID.String()).Msg("failed to build game event")
		return
	}
	if err := r.sink.Publish(ctx, event); err != nil {
		log.Error().
			Err(err).
			Str("game_id", gameID.String()).
			Str("event_type", string(eventType)).
			Msg("failed to publish game event")
	}
}

// runner drives one game. It is the single writer of its progress record;
// progress is mutated only inside tick, under mu, and persisted before the
// next tick is awaited.
type runner struct {
	registry  *Registry
	gameID    uuid.UUID
	questions []models.Question

	mu       sync.Mutex
	progress models.GameProgress
	terminal bool
}

func (run *runner) run(ctx context.Context) {
	defer run.registry.remove(run.gameID)

	ticker := run.registry.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("game_id", run.gameID.String()).Msg("runner shutting down")
			return
		case <-ticker.Chan():
			if run.tick(ctx) {
				log.Info().Str("game_id", run.gameID.String()).Msg("game finished")
				return
			}
		}
	}
}

// tick advances the game clock by one second. It returns true once the
// terminal snapshot has been durably persisted; until then the runner
// keeps retrying at each tick boundary with the current in-memory state.
func (run *runner) tick(ctx context.Context) bool {
	run.mu.Lock()
	if run.terminal {
		run.mu.Unlock()
		return run.persist(ctx)
	}

	run.progress.RemainingSeconds--
	snapshot := run.progress
	run.mu.Unlock()

	run.persist(ctx)

	if snapshot.RemainingSeconds > 0 {
		return false
	}

	run.mu.Lock()
	if run.progress.CurrentQuestion+1 < run.progress.QuestionCount {
		// Question repeats are possible: the draw has no exclusion memory.
		run.progress.CurrentQuestion++
		run.progress.Question = run.questions[run.registry.pick(len(run.questions))]
		run.progress.RemainingSeconds = run.registry.questionSeconds
		next := run.progress
		run.mu.Unlock()

		run.persist(ctx)
		run.registry.emit(ctx, run.gameID, events.EventTypeQuestionAdvanced, events.QuestionAdvancedPayload{
			GameID:          run.gameID.String(),
			QuestionIndex:   next.CurrentQuestion,
			QuestionCount:   next.QuestionCount,
			QuestionSeconds: run.registry.questionSeconds,
			AdvancedAt:      run.registry.clock.Now(),
		})
		log.Info().
			Str("game_id", run.gameID.String()).
			Int("question_index", next.CurrentQuestion).
			Msg("next question")
		return false
	}

	// Last question elapsed: the final persist marks the record terminal
	// with the index equal to the question count.
	run.progress.CurrentQuestion++
	run.progress.RemainingSeconds = 0
	run.terminal = true
	run.mu.Unlock()

	done := run.persist(ctx)
	if done {
		run.registry.emit(ctx, run.gameID, events.EventTypeGameEnded, events.GameEndedPayload{
			GameID:        run.gameID.String(),
			QuestionCount: run.progress.QuestionCount,
			EndedAt:       run.registry.clock.Now(),
		})
	}
	return done
}

// persist replaces the stored record with the current in-memory snapshot.
// Failures are logged and absorbed; in-memory state stays the source of
// truth and the write is retried at the next tick boundary.
func (run *runner) persist(ctx context.Context) bool {
	run.mu.Lock()
	snapshot := run.progress
	run.mu.Unlock()

	if _, err := run.registry.store.ReplaceProgress(ctx, snapshot); err != nil {
		log.Error().
			Err(err).
			Str("game_id", run.gameID.String()).
			Int("question_index", snapshot.CurrentQuestion).
			Int("remaining_seconds", snapshot.RemainingSeconds).
			Msg("failed to persist tick, will retry next tick")
		return false
	}
	return true
}

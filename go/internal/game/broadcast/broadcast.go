// Package broadcast turns game progress into per-subscriber event streams.
// Each subscription runs its own goroutine on a one-second clock and reads
// state lazily at each tick, so subscribers never affect each other or the
// driver.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game"
	"github.com/codingfighters/trivia/go/internal/models"
)

// Kind discriminates the events a subscription can deliver.
type Kind string

const (
	// KindNotStarted carries the current roster while the game has not begun.
	KindNotStarted Kind = "not_started"
	// KindProgress carries a progress snapshot of a running game.
	KindProgress Kind = "progress"
	// KindEnd marks the end of the stream. It is sent exactly once and the
	// channel is closed after it.
	KindEnd Kind = "end"
)

// Event is one element of a subscription stream. Roster is set for
// KindNotStarted, Progress for KindProgress; KindEnd carries neither.
type Event struct {
	Kind     Kind
	Roster   []string
	Progress *models.GameProgress
}

// GameSource reads game records for roster and start-state checks.
type GameSource interface {
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// ProgressSource reads the freshest available progress for a game.
type ProgressSource interface {
	GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error)
}

// Hub creates progress subscriptions. It holds no per-game state; every
// subscription polls the sources independently.
type Hub struct {
	games    GameSource
	progress ProgressSource
	clock    clockwork.Clock
	interval time.Duration
}

// NewHub creates a hub ticking subscriptions once per second on the real
// clock.
func NewHub(games GameSource, progress ProgressSource) *Hub {
	return &Hub{
		games:    games,
		progress: progress,
		clock:    clockwork.NewRealClock(),
		interval: time.Second,
	}
}

// Subscribe opens an event stream for a game. The returned channel yields
// KindNotStarted events with the roster until the game starts, then
// KindProgress snapshots in monotonic order, then a single KindEnd, after
// which the channel is closed. Cancelling ctx closes the channel promptly
// at the next delivery point. Subscribing to an unknown game fails with
// ErrGameNotFound.
func (h *Hub) Subscribe(ctx context.Context, gameID uuid.UUID) (<-chan Event, error) {
	if _, err := h.games.GetGame(ctx, gameID); err != nil {
		return nil, fmt.Errorf("failed to subscribe to game: %w", err)
	}

	ch := make(chan Event, 1)
	go h.stream(ctx, gameID, ch)
	return ch, nil
}

func (h *Hub) stream(ctx context.Context, gameID uuid.UUID, ch chan<- Event) {
	defer close(ch)

	ticker := h.clock.NewTicker(h.interval)
	defer ticker.Stop()

	// lastIndex/lastRemaining guard ordering: a snapshot that would run the
	// stream backwards (stale store read racing a live one) is skipped.
	lastIndex := -1
	lastRemaining := 0
	started := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}

		if !started {
			g, err := h.games.GetGame(ctx, gameID)
			if err != nil {
				if errors.Is(err, game.ErrGameNotFound) {
					return
				}
				log.Warn().Err(err).Str("game_id", gameID.String()).Msg("roster read failed, skipping tick")
				continue
			}
			if !g.IsStarted {
				if !send(ctx, ch, Event{Kind: KindNotStarted, Roster: g.Users}) {
					return
				}
				continue
			}
			started = true
		}

		p, err := h.progress.GetProgress(ctx, gameID)
		if err != nil {
			if errors.Is(err, game.ErrProgressNotFound) {
				// Started but no record yet; the driver persists before the
				// flag flips, so this clears within a tick.
				continue
			}
			log.Warn().Err(err).Str("game_id", gameID.String()).Msg("progress read failed, skipping tick")
			continue
		}

		if p.CurrentQuestion < lastIndex ||
			(p.CurrentQuestion == lastIndex && p.RemainingSeconds > lastRemaining) {
			continue
		}
		lastIndex = p.CurrentQuestion
		lastRemaining = p.RemainingSeconds

		if p.Terminal() {
			send(ctx, ch, Event{Kind: KindEnd})
			return
		}
		if !send(ctx, ch, Event{Kind: KindProgress, Progress: p}) {
			return
		}
	}
}

// send delivers an event unless the subscriber has gone away.
func send(ctx context.Context, ch chan<- Event, event Event) bool {
	select {
	case ch <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

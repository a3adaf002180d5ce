package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/codingfighters/trivia/go/internal/game"
	"github.com/codingfighters/trivia/go/internal/models"
)

type fakeGames struct {
	mu   sync.Mutex
	game *models.Game
}

func (f *fakeGames) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.game == nil || f.game.ID != id {
		return nil, game.ErrGameNotFound
	}
	copied := *f.game
	return &copied, nil
}

func (f *fakeGames) setStarted() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.game.IsStarted = true
}

// progressResponse is one scripted reply from the fake progress source.
type progressResponse struct {
	progress *models.GameProgress
	err      error
}

// fakeProgress replays scripted responses in order; the last one repeats.
type fakeProgress struct {
	mu        sync.Mutex
	responses []progressResponse
	calls     int
}

func (f *fakeProgress) GetProgress(ctx context.Context, gameID uuid.UUID) (*models.GameProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	resp := f.responses[i]
	if resp.err != nil {
		return nil, resp.err
	}
	copied := *resp.progress
	return &copied, nil
}

func snapshot(gameID uuid.UUID, current, count, remaining int) *models.GameProgress {
	return &models.GameProgress{
		GameID:           gameID,
		CurrentQuestion:  current,
		QuestionCount:    count,
		RemainingSeconds: remaining,
	}
}

func newTestHub(games GameSource, progress ProgressSource) *Hub {
	h := NewHub(games, progress)
	h.interval = time.Millisecond
	return h
}

func recv(t *testing.T, ch <-chan Event) (Event, bool) {
	t.Helper()
	select {
	case event, ok := <-ch:
		return event, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}

func TestSubscribeUnknownGame(t *testing.T) {
	hub := newTestHub(&fakeGames{}, &fakeProgress{})

	_, err := hub.Subscribe(context.Background(), uuid.New())
	if !errors.Is(err, game.ErrGameNotFound) {
		t.Fatalf("Subscribe() error = %v, want ErrGameNotFound", err)
	}
}

func TestRosterUntilStartThenProgressThenEnd(t *testing.T) {
	gameID := uuid.New()
	games := &fakeGames{game: &models.Game{
		ID:            gameID,
		QuestionCount: 2,
		Users:         []string{"alice", "bob"},
	}}
	progress := &fakeProgress{responses: []progressResponse{
		{progress: snapshot(gameID, 0, 2, 20)},
		{progress: snapshot(gameID, 1, 2, 20)},
		{progress: snapshot(gameID, 2, 2, 0)}, // terminal
	}}
	hub := newTestHub(games, progress)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, gameID)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	event, _ := recv(t, ch)
	if event.Kind != KindNotStarted {
		t.Fatalf("first event kind = %s, want %s", event.Kind, KindNotStarted)
	}
	if len(event.Roster) != 2 || event.Roster[0] != "alice" || event.Roster[1] != "bob" {
		t.Fatalf("roster = %v, want [alice bob]", event.Roster)
	}

	games.setStarted()

	// Drain any remaining roster frames queued before the start was seen.
	for {
		event, ok := recv(t, ch)
		if !ok {
			t.Fatal("channel closed before any progress event")
		}
		if event.Kind == KindNotStarted {
			continue
		}
		if event.Kind != KindProgress || event.Progress.CurrentQuestion != 0 {
			t.Fatalf("got %s (question %v), want progress for question 0", event.Kind, event.Progress)
		}
		break
	}

	event, _ = recv(t, ch)
	if event.Kind != KindProgress || event.Progress.CurrentQuestion != 1 {
		t.Fatalf("got %s, want progress for question 1", event.Kind)
	}

	event, _ = recv(t, ch)
	if event.Kind != KindEnd {
		t.Fatalf("got %s, want %s", event.Kind, KindEnd)
	}

	if _, ok := recv(t, ch); ok {
		t.Fatal("channel still open after end event")
	}
}

func TestSkipsRegressingSnapshots(t *testing.T) {
	gameID := uuid.New()
	games := &fakeGames{game: &models.Game{ID: gameID, QuestionCount: 3, IsStarted: true}}
	progress := &fakeProgress{responses: []progressResponse{
		{progress: snapshot(gameID, 1, 3, 5)},
		{progress: snapshot(gameID, 0, 3, 9)},  // stale read, must not surface
		{progress: snapshot(gameID, 1, 3, 10)}, // same question, clock ran backwards
		{progress: snapshot(gameID, 1, 3, 4)},
		{progress: snapshot(gameID, 3, 3, 0)}, // terminal
	}}
	hub := newTestHub(games, progress)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, gameID)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	var got []Event
	for {
		event, ok := recv(t, ch)
		if !ok {
			break
		}
		got = append(got, event)
	}

	if len(got) != 3 {
		t.Fatalf("received %d events, want 3 (two progress + end)", len(got))
	}
	if got[0].Kind != KindProgress || got[0].Progress.RemainingSeconds != 5 {
		t.Fatalf("event 0 = %s (%v), want progress with 5s", got[0].Kind, got[0].Progress)
	}
	if got[1].Kind != KindProgress || got[1].Progress.RemainingSeconds != 4 {
		t.Fatalf("event 1 = %s (%v), want progress with 4s", got[1].Kind, got[1].Progress)
	}
	if got[2].Kind != KindEnd {
		t.Fatalf("event 2 = %s, want %s", got[2].Kind, KindEnd)
	}
}

func TestStoreErrorSkipsTick(t *testing.T) {
	gameID := uuid.New()
	games := &fakeGames{game: &models.Game{ID: gameID, QuestionCount: 1, IsStarted: true}}
	progress := &fakeProgress{responses: []progressResponse{
		{err: errors.New("store unavailable")},
		{progress: snapshot(gameID, 0, 1, 7)},
		{progress: snapshot(gameID, 1, 1, 0)}, // terminal
	}}
	hub := newTestHub(games, progress)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, gameID)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	event, _ := recv(t, ch)
	if event.Kind != KindProgress || event.Progress.RemainingSeconds != 7 {
		t.Fatalf("got %s, want the post-outage progress snapshot", event.Kind)
	}
	event, _ = recv(t, ch)
	if event.Kind != KindEnd {
		t.Fatalf("got %s, want %s", event.Kind, KindEnd)
	}
}

func TestCancelClosesStream(t *testing.T) {
	gameID := uuid.New()
	games := &fakeGames{game: &models.Game{ID: gameID, QuestionCount: 1, Users: []string{"alice"}}}
	hub := newTestHub(games, &fakeProgress{responses: []progressResponse{
		{err: game.ErrProgressNotFound},
	}})

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := hub.Subscribe(ctx, gameID)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	recv(t, ch) // stream is live
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

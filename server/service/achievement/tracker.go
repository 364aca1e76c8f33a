package achievement

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/wordtrail/wordtrail/store"
)

// trackerState is the JSON document persisted in the preference store.
// Achievement durability is deliberately independent from the word tables.
type trackerState struct {
	Achievements map[string]*Achievement `json:"achievements"`
	Counters     map[Type]int            `json:"counters"`
}

// Tracker consumes learning and game events and maintains achievement
// progress. All event intake goes through RecordEvent.
type Tracker struct {
	store *store.Store

	mu       sync.Mutex
	state    *trackerState
	games    map[string]bool // game-id -> has been played
	watchers []chan []*Achievement
	now      func() time.Time
}

// NewTracker creates a tracker backed by the given store. Call Init before
// recording events.
func NewTracker(s *store.Store) *Tracker {
	return &Tracker{
		store: s,
		now:   time.Now,
	}
}

// Init loads persisted state, materializing the default achievement set on
// first run.
func (t *Tracker) Init(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := &trackerState{
		Achievements: make(map[string]*Achievement),
		Counters:     make(map[Type]int),
	}
	pref, err := t.store.GetPreference(ctx, &store.FindPreference{Key: store.PreferenceKeyAchievements})
	if err != nil {
		return errors.Wrap(err, "failed to load achievement state")
	}
	if pref != nil {
		if err := json.Unmarshal([]byte(pref.Value), state); err != nil {
			return errors.Wrap(err, "failed to decode achievement state")
		}
	}
	// Materialize defaults that are not present yet. Existing progress is
	// kept as-is.
	for _, def := range defaultAchievements() {
		if _, ok := state.Achievements[def.ID]; !ok {
			state.Achievements[def.ID] = def
		}
	}
	t.state = state

	t.games = make(map[string]bool)
	gamePref, err := t.store.GetPreference(ctx, &store.FindPreference{Key: store.PreferenceKeyGameRecords})
	if err != nil {
		return errors.Wrap(err, "failed to load game records")
	}
	if gamePref != nil {
		if err := json.Unmarshal([]byte(gamePref.Value), &t.games); err != nil {
			return errors.Wrap(err, "failed to decode game records")
		}
	}

	return t.persistLocked(ctx)
}

// RecordEvent is the single intake point for learning and game events.
func (t *Tracker) RecordEvent(ctx context.Context, event Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return errors.New("tracker not initialized")
	}

	if event.Kind == EventGamePlayed {
		t.recordGamePlayedLocked(event.GameID)
	}
	// A memory result counts as playing the memory game even when the
	// accuracy gate below rejects it for memory mastery.
	if event.Kind == EventMemoryResult {
		t.recordGamePlayedLocked(memoryGameID)
	}

	for _, r := range eventRules[event.Kind] {
		if r.gate != nil && !r.gate(event) {
			continue
		}
		value := r.value(event)
		switch r.mode {
		case accumulate:
			t.state.Counters[r.achType] += value
		case highWater:
			if value > t.state.Counters[r.achType] {
				t.state.Counters[r.achType] = value
			}
		}
		t.updateProgressLocked(r.achType, t.state.Counters[r.achType])
	}

	if err := t.persistLocked(ctx); err != nil {
		return err
	}
	t.notifyLocked()
	return nil
}

// recordGamePlayedLocked marks a game as played and refreshes the composite
// game-master progress.
func (t *Tracker) recordGamePlayedLocked(gameID string) {
	if gameID == "" {
		return
	}
	t.games[gameID] = true

	played := 0
	for _, id := range TrackedGames {
		if t.games[id] {
			played++
		}
	}
	t.state.Counters[TypeGameMaster] = played
	t.updateProgressLocked(TypeGameMaster, played)
}

// updateProgressLocked feeds the current counter value into every
// achievement of the given type. Progress is clamped to [0, 1]; unlocking is
// idempotent and progress never moves backwards before unlock.
func (t *Tracker) updateProgressLocked(achType Type, current int) {
	for _, ach := range t.state.Achievements {
		if ach.Type != achType || ach.Unlocked() {
			continue
		}
		progress := float64(current) / float64(ach.Threshold)
		if progress > 1 {
			progress = 1
		}
		if progress < ach.Progress {
			continue
		}
		ach.Progress = progress
		if current >= ach.Threshold {
			ts := t.now().Unix()
			ach.UnlockedTs = &ts
			ach.Progress = 1
			slog.Info("achievement unlocked", slog.String("id", ach.ID))
		}
	}
}

// List returns all achievements ordered by id.
func (t *Tracker) List() []*Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Get returns one achievement by id, or nil.
func (t *Tracker) Get(id string) *Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return nil
	}
	if ach, ok := t.state.Achievements[id]; ok {
		clone := *ach
		return &clone
	}
	return nil
}

// GamesPlayed returns a copy of the game-play record.
func (t *Tracker) GamesPlayed() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	games := make(map[string]bool, len(t.games))
	for id, played := range t.games {
		games[id] = played
	}
	return games
}

// Watch returns a channel receiving an achievement snapshot after every
// recorded event. Slow receivers miss intermediate snapshots instead of
// blocking intake.
func (t *Tracker) Watch() <-chan []*Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan []*Achievement, 1)
	t.watchers = append(t.watchers, ch)
	return ch
}

// Close closes all watcher channels.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.watchers {
		close(ch)
	}
	t.watchers = nil
}

func (t *Tracker) snapshotLocked() []*Achievement {
	list := make([]*Achievement, 0, len(t.state.Achievements))
	for _, ach := range t.state.Achievements {
		clone := *ach
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (t *Tracker) notifyLocked() {
	snapshot := t.snapshotLocked()
	for _, ch := range t.watchers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot and replace it with the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	stateBytes, err := json.Marshal(t.state)
	if err != nil {
		return errors.Wrap(err, "failed to encode achievement state")
	}
	if _, err := t.store.UpsertPreference(ctx, &store.UpsertPreference{
		Key:   store.PreferenceKeyAchievements,
		Value: string(stateBytes),
	}); err != nil {
		return errors.Wrap(err, "failed to persist achievement state")
	}

	gameBytes, err := json.Marshal(t.games)
	if err != nil {
		return errors.Wrap(err, "failed to encode game records")
	}
	if _, err := t.store.UpsertPreference(ctx, &store.UpsertPreference{
		Key:   store.PreferenceKeyGameRecords,
		Value: string(gameBytes),
	}); err != nil {
		return errors.Wrap(err, "failed to persist game records")
	}
	return nil
}

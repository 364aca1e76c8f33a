package achievement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	storetest "github.com/wordtrail/wordtrail/store/test"
)

func newTestingTracker(ctx context.Context, t *testing.T) *Tracker {
	t.Helper()
	ts := storetest.NewTestingStore(ctx, t)
	tracker := NewTracker(ts)
	require.NoError(t, tracker.Init(ctx))
	t.Cleanup(tracker.Close)
	return tracker
}

func TestTracker_DefaultsMaterialized(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	list := tracker.List()
	require.NotEmpty(t, list)
	for _, ach := range list {
		require.False(t, ach.Unlocked())
		require.Zero(t, ach.Progress)
	}
	require.NotNil(t, tracker.Get("learned_50"))
}

func TestTracker_WordLearnedUnlock(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	for i := 0; i < 50; i++ {
		require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventWordLearned, Count: 1}))
	}

	ach := tracker.Get("learned_50")
	require.NotNil(t, ach)
	require.True(t, ach.Unlocked())
	require.Equal(t, 1.0, ach.Progress)
	unlockedTs := *ach.UnlockedTs

	// A 51st event is a no-op for the unlocked achievement.
	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventWordLearned, Count: 1}))
	ach = tracker.Get("learned_50")
	require.Equal(t, 1.0, ach.Progress)
	require.Equal(t, unlockedTs, *ach.UnlockedTs)

	// The larger thresholds keep making progress.
	ach = tracker.Get("learned_100")
	require.False(t, ach.Unlocked())
	require.InDelta(t, 0.51, ach.Progress, 1e-9)
}

func TestTracker_ProgressMonotonic(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventDailyStreak, Count: 5}))
	ach := tracker.Get("streak_7")
	require.InDelta(t, 5.0/7.0, ach.Progress, 1e-9)

	// A shorter streak never pulls progress backwards.
	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventDailyStreak, Count: 2}))
	ach = tracker.Get("streak_7")
	require.InDelta(t, 5.0/7.0, ach.Progress, 1e-9)

	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventDailyStreak, Count: 7}))
	require.True(t, tracker.Get("streak_7").Unlocked())
}

func TestTracker_GameMasterComposite(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	for i, game := range TrackedGames {
		require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventGamePlayed, GameID: game}))
		ach := tracker.Get("game_master")
		if i < len(TrackedGames)-1 {
			require.False(t, ach.Unlocked(), "unlocked after %d games", i+1)
		}
	}
	require.True(t, tracker.Get("game_master").Unlocked())

	// Replaying a game changes nothing.
	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventGamePlayed, GameID: TrackedGames[0]}))
	require.True(t, tracker.Get("game_master").Unlocked())
}

func TestTracker_MemoryAccuracyGate(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	// Low accuracy counts as played but does not advance memory mastery.
	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventMemoryResult, Level: 1, Accuracy: 0.5}))
	require.Zero(t, tracker.Get("memory_master_5").Progress)
	require.True(t, tracker.GamesPlayed()["memory"])
	require.InDelta(t, 1.0/float64(len(TrackedGames)), tracker.Get("game_master").Progress, 1e-9)

	for i := 0; i < 5; i++ {
		require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventMemoryResult, Level: 2, Accuracy: 0.9}))
	}
	require.True(t, tracker.Get("memory_master_5").Unlocked())
}

func TestTracker_GameScoreHighWater(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventGameScore, Score: 400}))
	require.InDelta(t, 0.4, tracker.Get("score_1000").Progress, 1e-9)

	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventGameScore, Score: 300}))
	require.InDelta(t, 0.4, tracker.Get("score_1000").Progress, 1e-9)

	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventGameScore, Score: 1200}))
	require.True(t, tracker.Get("score_1000").Unlocked())
}

func TestTracker_StatePersistsAcrossInit(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)

	tracker := NewTracker(ts)
	require.NoError(t, tracker.Init(ctx))
	for i := 0; i < 10; i++ {
		require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventWordLearned, Count: 1}))
	}
	require.True(t, tracker.Get("learned_10").Unlocked())
	tracker.Close()

	// A fresh tracker sees the persisted state.
	reloaded := NewTracker(ts)
	require.NoError(t, reloaded.Init(ctx))
	defer reloaded.Close()
	require.True(t, reloaded.Get("learned_10").Unlocked())
	require.InDelta(t, 0.2, reloaded.Get("learned_50").Progress, 1e-9)
}

func TestTracker_Watch(t *testing.T) {
	ctx := context.Background()
	tracker := newTestingTracker(ctx, t)

	ch := tracker.Watch()
	require.NoError(t, tracker.RecordEvent(ctx, Event{Kind: EventWordLearned, Count: 3}))

	snapshot := <-ch
	require.NotEmpty(t, snapshot)
	for _, ach := range snapshot {
		if ach.ID == "learned_10" {
			require.InDelta(t, 0.3, ach.Progress, 1e-9)
		}
	}
}

package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail/store"
)

func TestWordbookStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.CreateWordbook(ctx, &store.Wordbook{
		UID:         "cet4",
		Name:        "CET-4",
		Description: "college English test band 4",
		SourcePath:  "cet4.tsv",
		Type:        "import",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedTs)
	require.False(t, created.IsActive)

	// Get by uid.
	uid := "cet4"
	got, err := ts.GetWordbook(ctx, &store.FindWordbook{UID: &uid})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "CET-4", got.Name)

	// Update name and favorite flag.
	name := "CET-4 core"
	favorite := true
	require.NoError(t, ts.UpdateWordbook(ctx, &store.UpdateWordbook{
		ID:         created.ID,
		Name:       &name,
		IsFavorite: &favorite,
	}))
	got, err = ts.GetWordbook(ctx, &store.FindWordbook{ID: &created.ID})
	require.NoError(t, err)
	require.Equal(t, "CET-4 core", got.Name)
	require.True(t, got.IsFavorite)
}

func TestWordbookStore_SetActive(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	first := CreateTestingWordbook(ctx, t, ts, "first")
	second := CreateTestingWordbook(ctx, t, ts, "second")
	third := CreateTestingWordbook(ctx, t, ts, "third")

	// No active wordbook until one is chosen.
	active, err := ts.GetActiveWordbook(ctx)
	require.NoError(t, err)
	require.Nil(t, active)

	requireSingleActive := func(wantID int32) {
		t.Helper()
		books, err := ts.ListWordbooks(ctx, &store.FindWordbook{})
		require.NoError(t, err)
		activeCount := 0
		for _, book := range books {
			if book.IsActive {
				activeCount++
				require.Equal(t, wantID, book.ID)
			}
		}
		require.Equal(t, 1, activeCount)
	}

	require.NoError(t, ts.SetActiveWordbook(ctx, first.ID))
	requireSingleActive(first.ID)

	// Switching moves the single flag.
	require.NoError(t, ts.SetActiveWordbook(ctx, second.ID))
	requireSingleActive(second.ID)

	require.NoError(t, ts.SetActiveWordbook(ctx, third.ID))
	requireSingleActive(third.ID)

	// Activating a missing id fails and keeps the previous selection.
	require.Error(t, ts.SetActiveWordbook(ctx, 9999))
	requireSingleActive(third.ID)

	active, err = ts.GetActiveWordbook(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, third.ID, active.ID)
}

func TestWordbookStore_RecomputeStats(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)
	wordbook := CreateTestingWordbook(ctx, t, ts, "stats")

	today := day("2024-06-10")
	past := day("2024-06-01")
	future := day("2024-06-20")

	creates := []*store.Word{
		{Text: "new-1", Meaning: "m"},
		{Text: "new-2", Meaning: "m"},
		{Text: "due-1", Meaning: "m"},
		{Text: "scheduled-1", Meaning: "m"},
		{Text: "known-1", Meaning: "m"},
	}
	_, err := ts.CreateWords(ctx, wordbook.ID, creates)
	require.NoError(t, err)

	set := func(text string, status store.WordStatus, next time.Time, reviewCount int) {
		w, err := ts.GetWord(ctx, &store.FindWord{Text: &text})
		require.NoError(t, err)
		require.NoError(t, ts.UpdateWordReview(ctx, &store.UpdateWordReview{
			ID:             w.ID,
			Status:         status,
			LastReviewDate: &past,
			NextReviewDate: &next,
			ReviewCount:    reviewCount,
		}))
	}
	set("due-1", store.WordStatusNeedsReview, past, 1)
	set("scheduled-1", store.WordStatusNeedsReview, future, 2)
	set("known-1", store.WordStatusKnown, future, 5)

	stats, err := ts.RecomputeWordbookStats(ctx, wordbook.ID, today)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalCount)
	require.Equal(t, 2, stats.NewCount)
	require.Equal(t, 1, stats.ReviewCount)
	require.Equal(t, 1, stats.LearnedCount)
}

func TestWordbookStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)
	doomed := CreateTestingWordbook(ctx, t, ts, "doomed")
	kept := CreateTestingWordbook(ctx, t, ts, "kept")

	_, err := ts.CreateWords(ctx, doomed.ID, []*store.Word{
		{Text: "a", Meaning: "m"}, {Text: "b", Meaning: "m"},
	})
	require.NoError(t, err)
	_, err = ts.CreateWords(ctx, kept.ID, []*store.Word{
		{Text: "c", Meaning: "m"},
	})
	require.NoError(t, err)

	require.NoError(t, ts.DeleteWordbook(ctx, &store.DeleteWordbook{ID: doomed.ID}))

	got, err := ts.GetWordbook(ctx, &store.FindWordbook{ID: &doomed.ID})
	require.NoError(t, err)
	require.Nil(t, got)

	// The doomed wordbook's words are gone with it.
	count, err := ts.CountWords(ctx, &store.CountWord{WordbookID: &doomed.ID})
	require.NoError(t, err)
	require.Zero(t, count)

	// Other wordbooks keep their words.
	count, err = ts.CountWords(ctx, &store.CountWord{WordbookID: &kept.ID})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail/store"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIntervals_Days(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}

	tests := []struct {
		reviewCount int
		want        int
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{3, 7},
		{4, 15},
		{5, 30},
		{6, 30},   // clamped to the last entry
		{100, 30}, // clamped to the last entry
		{-1, 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, iv.Days(tt.reviewCount), "reviewCount=%d", tt.reviewCount)
	}
}

func TestIntervals_Indices(t *testing.T) {
	iv := Intervals{1, 3, 7, 14, 30}
	require.Equal(t, []int{0, 1, 2, 3, 4}, iv.Indices())
}

func TestStartLearning(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}
	today := date("2024-01-10")

	word := &store.Word{ID: 1, Status: store.WordStatusNew}
	update := StartLearning(word, today, iv)
	require.NotNil(t, update)
	require.Equal(t, store.WordStatusNeedsReview, update.Status)
	require.Equal(t, 0, update.ReviewCount)
	require.Equal(t, today, *update.LastReviewDate)
	require.Equal(t, date("2024-01-11"), *update.NextReviewDate)

	// A word can only be started once.
	studied := &store.Word{ID: 2, Status: store.WordStatusNeedsReview}
	require.Nil(t, StartLearning(studied, today, iv))
	known := &store.Word{ID: 3, Status: store.WordStatusKnown}
	require.Nil(t, StartLearning(known, today, iv))
}

func TestAnswer_Correct(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}
	today := date("2024-01-10")

	word := &store.Word{ID: 1, Status: store.WordStatusNeedsReview, ReviewCount: 2}
	update := Answer(word, true, today, iv)
	require.NotNil(t, update)
	require.Equal(t, store.WordStatusNeedsReview, update.Status)
	require.Equal(t, 3, update.ReviewCount)
	require.Equal(t, date("2024-01-17"), *update.NextReviewDate)
}

func TestAnswer_Incorrect(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}
	today := date("2024-01-10")

	// A wrong answer resets the count and schedules tomorrow, regardless of
	// prior progress.
	for _, count := range []int{0, 1, 2, 4} {
		word := &store.Word{ID: 1, Status: store.WordStatusNeedsReview, ReviewCount: count}
		update := Answer(word, false, today, iv)
		require.NotNil(t, update)
		require.Equal(t, store.WordStatusNeedsReview, update.Status)
		require.Equal(t, 0, update.ReviewCount)
		require.Equal(t, date("2024-01-11"), *update.NextReviewDate)
	}
}

func TestAnswer_MasteryThreshold(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}
	today := date("2024-01-10")

	word := &store.Word{ID: 1, Status: store.WordStatusNeedsReview, ReviewCount: MasteryThreshold - 1}
	update := Answer(word, true, today, iv)
	require.NotNil(t, update)
	require.Equal(t, store.WordStatusKnown, update.Status)
	require.Equal(t, MasteryThreshold, update.ReviewCount)

	// KNOWN is terminal under normal review flow.
	known := &store.Word{ID: 1, Status: store.WordStatusKnown, ReviewCount: MasteryThreshold}
	require.Nil(t, Answer(known, true, today, iv))
	require.Nil(t, Answer(known, false, today, iv))
}

func TestAnswer_FiveCorrectFromNew(t *testing.T) {
	iv := Intervals{1, 2, 4, 7, 15, 30}
	today := date("2024-01-01")

	word := &store.Word{ID: 1, Status: store.WordStatusNew}
	update := StartLearning(word, today, iv)
	word.Status = update.Status
	word.ReviewCount = update.ReviewCount
	word.LastReviewDate = update.LastReviewDate
	word.NextReviewDate = update.NextReviewDate

	for i := 0; i < MasteryThreshold; i++ {
		today = *word.NextReviewDate
		update = Answer(word, true, today, iv)
		require.NotNil(t, update)
		word.Status = update.Status
		word.ReviewCount = update.ReviewCount
		word.LastReviewDate = update.LastReviewDate
		word.NextReviewDate = update.NextReviewDate
		// nextReviewDate stays present once the word left NEW.
		require.NotNil(t, word.NextReviewDate)
	}

	require.Equal(t, store.WordStatusKnown, word.Status)
	require.Equal(t, MasteryThreshold, word.ReviewCount)

	// No further increments via normal review flow.
	require.Nil(t, Answer(word, true, today, iv))
}

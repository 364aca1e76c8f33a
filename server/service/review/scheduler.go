package review

import (
	"time"

	"github.com/wordtrail/wordtrail/store"
)

// The state machine per word:
//
//	NEW --start--> NEEDS_REVIEW(0)
//	NEEDS_REVIEW(n) --correct--> NEEDS_REVIEW(n+1), or KNOWN once n+1
//	reaches MasteryThreshold
//	NEEDS_REVIEW(n) --incorrect--> NEEDS_REVIEW(0), due tomorrow
//	KNOWN is terminal under normal review flow.
//
// All transitions are pure; storage happens in the service layer.

// StartLearning computes the transition for a word studied for the first
// time. Returns nil when the word is not NEW.
func StartLearning(word *store.Word, today time.Time, intervals Intervals) *store.UpdateWordReview {
	if word.Status != store.WordStatusNew {
		return nil
	}
	next := intervals.Next(today, 0)
	return &store.UpdateWordReview{
		ID:             word.ID,
		Status:         store.WordStatusNeedsReview,
		LastReviewDate: &today,
		NextReviewDate: &next,
		ReviewCount:    0,
	}
}

// Answer computes the transition for a review answer. Returns nil when the
// word is not in the review loop (KNOWN words and unstudied words are left
// alone).
func Answer(word *store.Word, correct bool, today time.Time, intervals Intervals) *store.UpdateWordReview {
	if word.Status != store.WordStatusNeedsReview {
		return nil
	}

	if !correct {
		// A wrong answer always resets the count and schedules a retry for
		// tomorrow, regardless of prior progress.
		tomorrow := today.AddDate(0, 0, 1)
		return &store.UpdateWordReview{
			ID:             word.ID,
			Status:         store.WordStatusNeedsReview,
			LastReviewDate: &today,
			NextReviewDate: &tomorrow,
			ReviewCount:    0,
		}
	}

	count := word.ReviewCount + 1
	status := store.WordStatusNeedsReview
	if count >= MasteryThreshold {
		status = store.WordStatusKnown
	}
	next := intervals.Next(today, count)
	return &store.UpdateWordReview{
		ID:             word.ID,
		Status:         status,
		LastReviewDate: &today,
		NextReviewDate: &next,
		ReviewCount:    count,
	}
}

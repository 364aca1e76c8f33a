package store

import (
	"context"
	"time"
)

// LearningRecord is one row of the append-only activity log. A record with
// ReviewTime 0 and IsCorrect true marks a word being started for the first
// time; any other combination is a review answer.
type LearningRecord struct {
	ID         int32
	WordID     int32
	WordbookID int32
	LearnDate  time.Time
	IsCorrect  bool
	// ReviewTime is the review count of the word at answer time.
	ReviewTime int
}

// FindLearningRecord is the find condition for learning records.
type FindLearningRecord struct {
	WordID    *int32
	LearnDate *time.Time
	// StartedOnly restricts to start-learning records (review_time = 0, correct).
	StartedOnly bool
}

// CreateLearningRecord appends a record to the activity log.
func (s *Store) CreateLearningRecord(ctx context.Context, create *LearningRecord) (*LearningRecord, error) {
	return s.driver.CreateLearningRecord(ctx, create)
}

// CountLearningRecords counts activity-log rows with filter.
func (s *Store) CountLearningRecords(ctx context.Context, find *FindLearningRecord) (int, error) {
	return s.driver.CountLearningRecords(ctx, find)
}

// CountWordsStartedOn counts how many new words were started on the given
// day. This drives the daily new-word goal.
func (s *Store) CountWordsStartedOn(ctx context.Context, day time.Time) (int, error) {
	return s.driver.CountLearningRecords(ctx, &FindLearningRecord{
		LearnDate:   &day,
		StartedOnly: true,
	})
}

package store

import (
	"context"
	"time"
)

// DateLayout is the layout for review dates persisted in the word table.
// Review scheduling works on whole days, so wall-clock time is dropped.
const DateLayout = "2006-01-02"

// WordStatus is the learning status of a word.
type WordStatus string

const (
	// WordStatusNew means the word has never been studied.
	WordStatusNew WordStatus = "NEW"
	// WordStatusNeedsReview means the word is in the review loop.
	WordStatusNeedsReview WordStatus = "NEEDS_REVIEW"
	// WordStatusKnown means the word crossed the mastery threshold.
	WordStatusKnown WordStatus = "KNOWN"
)

func (s WordStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known values.
func (s WordStatus) Valid() bool {
	switch s {
	case WordStatusNew, WordStatusNeedsReview, WordStatusKnown:
		return true
	}
	return false
}

// Word is the object representing a vocabulary word.
type Word struct {
	ID             int32
	Text           string
	Meaning        string
	UKPhonetic     string
	USPhonetic     string
	Example        string
	Status         WordStatus
	LastReviewDate *time.Time
	NextReviewDate *time.Time
	ReviewCount    int
	IsFavorite     bool
	ErrorCount     int
	WordbookID     int32
	LastModifiedTs int64
}

// FindWord is the find condition for words.
type FindWord struct {
	ID         *int32
	Text       *string
	WordbookID *int32
	Status     *WordStatus
	IsFavorite *bool
	// HasErrors filters words with error_count > 0.
	HasErrors *bool
	// DueBefore filters words with next_review_date on or before the given day.
	DueBefore *time.Time
	// Random orders the result randomly instead of by id.
	Random bool

	Limit *int
}

// UpdateWordReview overwrites the five review fields of a word.
type UpdateWordReview struct {
	ID             int32
	Status         WordStatus
	LastReviewDate *time.Time
	NextReviewDate *time.Time
	ReviewCount    int
}

// FindPlannedReview selects due words whose review count falls inside the
// interval schedule, ordered by next_review_date ascending.
type FindPlannedReview struct {
	Today time.Time
	// ReviewCounts are the admissible review_count values (interval schedule indices).
	ReviewCounts []int
	WordbookID   *int32
	Limit        int
}

// CountWord is the count condition for words.
type CountWord struct {
	WordbookID     *int32
	Status         *WordStatus
	DueBefore      *time.Time
	LastReviewDate *time.Time
}

// DeleteWord is the delete condition for words. A nil WordbookID clears all words.
type DeleteWord struct {
	WordbookID *int32
}

// MaxDueWords caps a due-word selection per session.
const MaxDueWords = 50

// CreateWords inserts words into a wordbook within a single transaction,
// chunked for efficiency. It returns the number of rows inserted.
func (s *Store) CreateWords(ctx context.Context, wordbookID int32, creates []*Word) (int, error) {
	n, err := s.driver.CreateWords(ctx, wordbookID, creates)
	if err != nil {
		return 0, err
	}
	s.invalidateWordCache(ctx)
	return n, nil
}

// GetWord gets a word by find condition. Returns nil when not found.
// The caller's condition is not modified.
func (s *Store) GetWord(ctx context.Context, find *FindWord) (*Word, error) {
	cond := *find
	limit := 1
	cond.Limit = &limit
	list, err := s.driver.ListWords(ctx, &cond)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListWords lists words with filter.
func (s *Store) ListWords(ctx context.Context, find *FindWord) ([]*Word, error) {
	return s.driver.ListWords(ctx, find)
}

// ListAllWords returns the full word snapshot, served from the read cache
// when it is fresh. The snapshot is what quiz generation samples from.
func (s *Store) ListAllWords(ctx context.Context) ([]*Word, error) {
	if value, ok := s.wordCache.Get(ctx, wordSnapshotKey); ok {
		if words, ok := value.([]*Word); ok {
			return words, nil
		}
	}
	words, err := s.driver.ListWords(ctx, &FindWord{})
	if err != nil {
		return nil, err
	}
	s.wordCache.Set(ctx, wordSnapshotKey, words)
	return words, nil
}

// ListDueWords returns up to MaxDueWords words due on the given day, in
// random order.
func (s *Store) ListDueWords(ctx context.Context, today time.Time) ([]*Word, error) {
	status := WordStatusNeedsReview
	limit := MaxDueWords
	return s.driver.ListWords(ctx, &FindWord{
		Status:    &status,
		DueBefore: &today,
		Random:    true,
		Limit:     &limit,
	})
}

// ListNewWords returns up to count unstudied words in random order.
func (s *Store) ListNewWords(ctx context.Context, count int) ([]*Word, error) {
	status := WordStatusNew
	return s.driver.ListWords(ctx, &FindWord{
		Status: &status,
		Random: true,
		Limit:  &count,
	})
}

// ListPlannedReviewWords returns due words restricted to the interval
// schedule, ordered by next review date.
func (s *Store) ListPlannedReviewWords(ctx context.Context, find *FindPlannedReview) ([]*Word, error) {
	return s.driver.ListPlannedReviewWords(ctx, find)
}

// UpdateWordReview unconditionally overwrites the review fields of a word.
// Updating a missing id is a no-op.
func (s *Store) UpdateWordReview(ctx context.Context, update *UpdateWordReview) error {
	if err := s.driver.UpdateWordReview(ctx, update); err != nil {
		return err
	}
	s.invalidateWordCache(ctx)
	return nil
}

// SetWordFavorite toggles the favorite flag of a word.
func (s *Store) SetWordFavorite(ctx context.Context, id int32, favorite bool) error {
	if err := s.driver.SetWordFavorite(ctx, id, favorite); err != nil {
		return err
	}
	s.invalidateWordCache(ctx)
	return nil
}

// SetWordErrorCount overwrites the error count of a word.
func (s *Store) SetWordErrorCount(ctx context.Context, id int32, count int) error {
	if err := s.driver.SetWordErrorCount(ctx, id, count); err != nil {
		return err
	}
	s.invalidateWordCache(ctx)
	return nil
}

// ResetWordStatus reverts every word with status != KNOWN back to NEW with
// cleared dates and counts, optionally scoped to one wordbook. KNOWN rows are
// left completely untouched. It returns the number of affected rows.
func (s *Store) ResetWordStatus(ctx context.Context, wordbookID *int32) (int64, error) {
	n, err := s.driver.ResetWordStatus(ctx, wordbookID)
	if err != nil {
		return 0, err
	}
	s.invalidateWordCache(ctx)
	return n, nil
}

// ClearProgress is an alias for ResetWordStatus. The product exposes the two
// names for the same operation.
func (s *Store) ClearProgress(ctx context.Context, wordbookID *int32) (int64, error) {
	return s.ResetWordStatus(ctx, wordbookID)
}

// DeleteWords unconditionally deletes words matching the condition.
func (s *Store) DeleteWords(ctx context.Context, delete *DeleteWord) error {
	if err := s.driver.DeleteWords(ctx, delete); err != nil {
		return err
	}
	s.invalidateWordCache(ctx)
	return nil
}

// CountWords counts words with filter.
func (s *Store) CountWords(ctx context.Context, count *CountWord) (int, error) {
	return s.driver.CountWords(ctx, count)
}

// CountDueWords counts words due on the given day. Daily counts drive goal
// decisions, so the cache is invalidated first to force a fresh read.
func (s *Store) CountDueWords(ctx context.Context, today time.Time) (int, error) {
	s.invalidateWordCache(ctx)
	status := WordStatusNeedsReview
	return s.driver.CountWords(ctx, &CountWord{Status: &status, DueBefore: &today})
}

// CountTodayLearned counts words whose last review happened on the given day.
func (s *Store) CountTodayLearned(ctx context.Context, today time.Time) (int, error) {
	s.invalidateWordCache(ctx)
	return s.driver.CountWords(ctx, &CountWord{LastReviewDate: &today})
}

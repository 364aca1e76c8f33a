package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/wordtrail/wordtrail/internal/profile"
	"github.com/wordtrail/wordtrail/server/service/achievement"
	"github.com/wordtrail/wordtrail/store"
)

// Service orchestrates review sessions: it selects words, applies the state
// machine, persists the results and forwards learning events to the
// achievement tracker.
//
// Fetch methods never surface storage errors: they log and degrade to empty
// results so screen code can render "no words found". Policy conditions
// (ErrNotLearningDay, ErrDailyGoalReached) are real errors the caller is
// expected to inspect.
type Service struct {
	store     *store.Store
	profile   *profile.Profile
	tracker   *achievement.Tracker
	intervals Intervals

	// sessionOverride force-continues past the learning-day and daily-goal
	// checks for the remainder of the session.
	sessionOverride bool

	now func() time.Time
}

// NewService creates a review service. The tracker may be nil, in which case
// learning events are not recorded.
func NewService(s *store.Store, p *profile.Profile, tracker *achievement.Tracker) *Service {
	return &Service{
		store:     s,
		profile:   p,
		tracker:   tracker,
		intervals: Intervals(p.Intervals),
		now:       time.Now,
	}
}

// Today returns the current day truncated to midnight.
func (s *Service) Today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// OverrideSession force-continues past policy checks for the remainder of
// the session.
func (s *Service) OverrideSession() {
	s.sessionOverride = true
}

// FetchDueWords returns the words due for review today, capped and randomly
// ordered.
func (s *Service) FetchDueWords(ctx context.Context) []*store.Word {
	words, err := s.store.ListDueWords(ctx, s.Today())
	if err != nil {
		slog.Error("failed to fetch due words", slog.String("error", err.Error()))
		return nil
	}
	return words
}

// FetchNewWords returns up to count unstudied words in random order.
func (s *Service) FetchNewWords(ctx context.Context, count int) []*store.Word {
	words, err := s.store.ListNewWords(ctx, count)
	if err != nil {
		slog.Error("failed to fetch new words", slog.String("error", err.Error()))
		return nil
	}
	return words
}

// FetchPlannedReview returns due words restricted to the interval schedule,
// ordered by next review date. A non-positive limit falls back to the
// profile's daily review goal.
func (s *Service) FetchPlannedReview(ctx context.Context, limit int) []*store.Word {
	if limit <= 0 {
		limit = s.profile.DailyReviewGoal
	}
	words, err := s.store.ListPlannedReviewWords(ctx, &store.FindPlannedReview{
		Today:        s.Today(),
		ReviewCounts: s.intervals.Indices(),
		Limit:        limit,
	})
	if err != nil {
		slog.Error("failed to fetch planned review words", slog.String("error", err.Error()))
		return nil
	}
	return words
}

// RemainingNewWords returns how many new words can still be started today
// under the daily goal, clamped to zero and to the available word count.
func (s *Service) RemainingNewWords(ctx context.Context) int {
	started, err := s.store.CountWordsStartedOn(ctx, s.Today())
	if err != nil {
		slog.Error("failed to count started words", slog.String("error", err.Error()))
		return 0
	}
	remaining := s.profile.DailyNewGoal - started
	if remaining < 0 {
		remaining = 0
	}
	status := store.WordStatusNew
	available, err := s.store.CountWords(ctx, &store.CountWord{Status: &status})
	if err != nil {
		slog.Error("failed to count new words", slog.String("error", err.Error()))
		return 0
	}
	if available < remaining {
		remaining = available
	}
	return remaining
}

// checkLearningPolicy enforces the weekly schedule and the daily new-word
// goal. Review answers are never policy-limited; only starting new words is.
func (s *Service) checkLearningPolicy(ctx context.Context) error {
	if s.sessionOverride {
		return nil
	}
	today := s.Today()
	if !s.profile.IsLearningDay(today) {
		return ErrNotLearningDay
	}
	started, err := s.store.CountWordsStartedOn(ctx, today)
	if err != nil {
		slog.Error("failed to count started words", slog.String("error", err.Error()))
		return nil
	}
	if started >= s.profile.DailyNewGoal {
		return ErrDailyGoalReached
	}
	return nil
}

// StartLearning moves a NEW word into the review loop. Starting an already
// studied word or a missing id is a no-op.
func (s *Service) StartLearning(ctx context.Context, wordID int32) error {
	if err := s.checkLearningPolicy(ctx); err != nil {
		return err
	}

	word, err := s.store.GetWord(ctx, &store.FindWord{ID: &wordID})
	if err != nil {
		slog.Error("failed to get word", slog.Int("id", int(wordID)), slog.String("error", err.Error()))
		return nil
	}
	if word == nil {
		return nil
	}

	today := s.Today()
	update := StartLearning(word, today, s.intervals)
	if update == nil {
		return nil
	}
	if err := s.store.UpdateWordReview(ctx, update); err != nil {
		slog.Error("failed to update word review", slog.Int("id", int(wordID)), slog.String("error", err.Error()))
		return nil
	}
	if _, err := s.store.CreateLearningRecord(ctx, &store.LearningRecord{
		WordID:     word.ID,
		WordbookID: word.WordbookID,
		LearnDate:  today,
		IsCorrect:  true,
		ReviewTime: 0,
	}); err != nil {
		slog.Error("failed to append learning record", slog.String("error", err.Error()))
	}

	s.recordEvent(ctx, achievement.Event{Kind: achievement.EventWordLearned, Count: 1})
	return nil
}

// RecordAnswer applies a review answer to a word. Answers for KNOWN or
// missing words are no-ops.
func (s *Service) RecordAnswer(ctx context.Context, wordID int32, correct bool) error {
	word, err := s.store.GetWord(ctx, &store.FindWord{ID: &wordID})
	if err != nil {
		slog.Error("failed to get word", slog.Int("id", int(wordID)), slog.String("error", err.Error()))
		return nil
	}
	if word == nil {
		return nil
	}

	today := s.Today()
	update := Answer(word, correct, today, s.intervals)
	if update == nil {
		return nil
	}
	if err := s.store.UpdateWordReview(ctx, update); err != nil {
		slog.Error("failed to update word review", slog.Int("id", int(wordID)), slog.String("error", err.Error()))
		return nil
	}
	if _, err := s.store.CreateLearningRecord(ctx, &store.LearningRecord{
		WordID:     word.ID,
		WordbookID: word.WordbookID,
		LearnDate:  today,
		IsCorrect:  correct,
		ReviewTime: update.ReviewCount,
	}); err != nil {
		slog.Error("failed to append learning record", slog.String("error", err.Error()))
	}
	if !correct {
		if err := s.store.SetWordErrorCount(ctx, word.ID, word.ErrorCount+1); err != nil {
			slog.Error("failed to update error count", slog.String("error", err.Error()))
		}
	}

	s.recordEvent(ctx, achievement.Event{Kind: achievement.EventReviewCompleted})
	return nil
}

// ToggleFavorite flips the favorite flag of a word. Missing ids are no-ops.
func (s *Service) ToggleFavorite(ctx context.Context, wordID int32, favorite bool) {
	if err := s.store.SetWordFavorite(ctx, wordID, favorite); err != nil {
		slog.Error("failed to toggle favorite", slog.Int("id", int(wordID)), slog.String("error", err.Error()))
	}
}

// GetFavorites returns all favorited words.
func (s *Service) GetFavorites(ctx context.Context) []*store.Word {
	favorite := true
	words, err := s.store.ListWords(ctx, &store.FindWord{IsFavorite: &favorite})
	if err != nil {
		slog.Error("failed to fetch favorites", slog.String("error", err.Error()))
		return nil
	}
	return words
}

// GetErrorWords returns words that have been answered incorrectly at least
// once.
func (s *Service) GetErrorWords(ctx context.Context) []*store.Word {
	hasErrors := true
	words, err := s.store.ListWords(ctx, &store.FindWord{HasErrors: &hasErrors})
	if err != nil {
		slog.Error("failed to fetch error words", slog.String("error", err.Error()))
		return nil
	}
	return words
}

// ResetProgress reverts all non-KNOWN words to NEW, optionally scoped to one
// wordbook. Returns the number of affected words.
func (s *Service) ResetProgress(ctx context.Context, wordbookID *int32) int64 {
	n, err := s.store.ResetWordStatus(ctx, wordbookID)
	if err != nil {
		slog.Error("failed to reset progress", slog.String("error", err.Error()))
		return 0
	}
	return n
}

func (s *Service) recordEvent(ctx context.Context, event achievement.Event) {
	if s.tracker == nil {
		return
	}
	if err := s.tracker.RecordEvent(ctx, event); err != nil {
		slog.Error("failed to record achievement event", slog.String("kind", string(event.Kind)), slog.String("error", err.Error()))
	}
}

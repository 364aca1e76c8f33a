package review

import "github.com/pkg/errors"

// Scheduling-policy conditions. They are surfaced to callers by name so the
// UI can offer an override, unlike storage failures which degrade silently.
var (
	// ErrDailyGoalReached means today's new-word goal has been met.
	ErrDailyGoalReached = errors.New("daily new-word goal reached")
	// ErrNotLearningDay means the weekly schedule excludes today.
	ErrNotLearningDay = errors.New("not a learning day")
)

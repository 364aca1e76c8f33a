package review

import "time"

// MasteryThreshold is the review count at which a word graduates from
// NEEDS_REVIEW to KNOWN.
const MasteryThreshold = 5

// Intervals is a review interval table in days, indexed by review count.
// Lookups past the end clamp to the last entry.
type Intervals []int

// Days returns the interval in days for the given review count.
func (iv Intervals) Days(reviewCount int) int {
	if len(iv) == 0 {
		return 1
	}
	if reviewCount < 0 {
		reviewCount = 0
	}
	if reviewCount >= len(iv) {
		reviewCount = len(iv) - 1
	}
	return iv[reviewCount]
}

// Next returns the next review date for the given review count.
func (iv Intervals) Next(today time.Time, reviewCount int) time.Time {
	return today.AddDate(0, 0, iv.Days(reviewCount))
}

// Indices returns the admissible review-count values of the schedule,
// used by the planned-review selection.
func (iv Intervals) Indices() []int {
	indices := make([]int, len(iv))
	for i := range iv {
		indices[i] = i
	}
	return indices
}

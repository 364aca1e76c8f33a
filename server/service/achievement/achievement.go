package achievement

// Type tags achievements by the metric they track.
type Type string

const (
	TypeWordsLearned     Type = "WORDS_LEARNED"
	TypeDailyStreak      Type = "DAILY_STREAK"
	TypeReviewsCompleted Type = "REVIEWS_COMPLETED"
	TypeGameMaster       Type = "GAME_MASTER"
	TypeGameScore        Type = "GAME_SCORE"
	TypeFillBlanksStreak Type = "FILL_BLANKS_STREAK"
	TypeWordChain        Type = "WORD_CHAIN"
	TypeMemoryMastery    Type = "MEMORY_MASTERY"
)

// Achievement is one unlockable badge.
type Achievement struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Threshold   int     `json:"threshold"`
	Progress    float64 `json:"progress"`
	UnlockedTs  *int64  `json:"unlockedTs,omitempty"`
}

// Unlocked reports whether the achievement has been unlocked.
func (a *Achievement) Unlocked() bool {
	return a.UnlockedTs != nil
}

// EventKind enumerates the learning/game events the tracker consumes.
type EventKind string

const (
	EventWordLearned      EventKind = "word-learned"
	EventDailyStreak      EventKind = "daily-streak"
	EventReviewCompleted  EventKind = "review-completed"
	EventGamePlayed       EventKind = "game-played"
	EventGameScore        EventKind = "game-score"
	EventFillBlanksStreak EventKind = "fill-blanks-streak"
	EventWordChainLength  EventKind = "word-chain-length"
	EventMemoryResult     EventKind = "memory-result"
)

// Event is one learning or game event. Only the fields relevant to the kind
// are set.
type Event struct {
	Kind EventKind

	Count    int     // word-learned, daily-streak, fill-blanks-streak, word-chain-length
	GameID   string  // game-played
	Score    int     // game-score
	Level    int     // memory-result
	Accuracy float64 // memory-result
}

// memoryAccuracyGate is the minimum accuracy for a memory-game result to
// advance the memory-mastery achievement. Lower results still count as a
// play for game-master purposes.
const memoryAccuracyGate = 0.8

// accumMode decides how an event value folds into the running counter.
type accumMode int

const (
	accumulate accumMode = iota // counter += value
	highWater                   // counter = max(counter, value)
)

// rule maps an event kind onto an achievement type.
type rule struct {
	achType Type
	mode    accumMode
	value   func(Event) int
	gate    func(Event) bool
}

func eventCount(e Event) int { return e.Count }
func one(Event) int          { return 1 }

// eventRules is the declarative event-to-achievement mapping. Adding a new
// achievement type means adding a rule here, not touching call sites.
var eventRules = map[EventKind][]rule{
	EventWordLearned:      {{achType: TypeWordsLearned, mode: accumulate, value: eventCount}},
	EventDailyStreak:      {{achType: TypeDailyStreak, mode: highWater, value: eventCount}},
	EventReviewCompleted:  {{achType: TypeReviewsCompleted, mode: accumulate, value: one}},
	EventGameScore:        {{achType: TypeGameScore, mode: highWater, value: func(e Event) int { return e.Score }}},
	EventFillBlanksStreak: {{achType: TypeFillBlanksStreak, mode: highWater, value: eventCount}},
	EventWordChainLength:  {{achType: TypeWordChain, mode: highWater, value: eventCount}},
	EventMemoryResult: {{
		achType: TypeMemoryMastery,
		mode:    accumulate,
		value:   one,
		gate:    func(e Event) bool { return e.Accuracy >= memoryAccuracyGate },
	}},
	// EventGamePlayed feeds the game-play record instead of a counter; the
	// tracker derives the composite game-master progress from that record.
}

package quiz

import (
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail/store"
)

// Direction is the question direction, chosen independently per question.
type Direction int

const (
	// WordToMeaning shows the word and asks for its meaning.
	WordToMeaning Direction = iota
	// MeaningToWord shows the meaning and asks for the word.
	MeaningToWord
)

// DefaultOptionCount is the option-set size including the correct answer.
const DefaultOptionCount = 4

// Option is one multiple-choice entry.
type Option struct {
	WordID  int32
	Text    string
	Correct bool
}

// Generator builds multiple-choice option sets with plausible distractors.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a generator with a time-seeded source.
func NewGenerator() *Generator {
	return &Generator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSeed creates a deterministic generator for tests.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// Generate builds an option set for the target word from the candidate pool.
// Distractors are drawn first from a direction-specific heuristic, then
// topped up at random from the remaining pool. The result always contains
// the correct answer exactly once and is shuffled. When the pool is too
// small the set degrades to fewer options instead of failing.
func (g *Generator) Generate(target *store.Word, pool []*store.Word, optionCount int, direction Direction) []Option {
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}

	candidates := lo.Filter(pool, func(w *store.Word, _ int) bool {
		return w.ID != target.ID && g.optionText(w, direction) != g.optionText(target, direction)
	})
	// Pool words can share an option text (synonymous meanings); keep one.
	candidates = lo.UniqBy(candidates, func(w *store.Word) string {
		return g.optionText(w, direction)
	})

	preferred := lo.Filter(candidates, func(w *store.Word, _ int) bool {
		return g.plausible(target, w, direction)
	})
	rest := lo.Filter(candidates, func(w *store.Word, _ int) bool {
		return !g.plausible(target, w, direction)
	})

	distractors := g.sample(preferred, optionCount-1)
	if len(distractors) < optionCount-1 {
		distractors = append(distractors, g.sample(rest, optionCount-1-len(distractors))...)
	}

	options := make([]Option, 0, len(distractors)+1)
	for _, w := range distractors {
		options = append(options, Option{WordID: w.ID, Text: g.optionText(w, direction)})
	}
	options = append(options, Option{WordID: target.ID, Text: g.optionText(target, direction), Correct: true})

	g.rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// plausible is the cheap mode-specific distractor heuristic. It is lexical,
// not semantic.
func (g *Generator) plausible(target, candidate *store.Word, direction Direction) bool {
	switch direction {
	case WordToMeaning:
		// Prefer meanings sharing at least one character with the target's.
		return sharesRune(candidate.Meaning, target.Meaning)
	case MeaningToWord:
		// Prefer words of similar length.
		diff := len([]rune(candidate.Text)) - len([]rune(target.Text))
		if diff < 0 {
			diff = -diff
		}
		return diff <= 2
	}
	return false
}

func (g *Generator) optionText(w *store.Word, direction Direction) string {
	if direction == MeaningToWord {
		return w.Text
	}
	return w.Meaning
}

// sample picks up to n distinct entries at random.
func (g *Generator) sample(words []*store.Word, n int) []*store.Word {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	if n > len(words) {
		n = len(words)
	}
	picked := make([]*store.Word, len(words))
	copy(picked, words)
	g.rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

func sharesRune(a, b string) bool {
	for _, r := range a {
		if strings.ContainsRune(b, r) {
			return true
		}
	}
	return false
}

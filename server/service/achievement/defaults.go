package achievement

// TrackedGames are the mini-games whose play records feed the composite
// game-master achievement.
var TrackedGames = []string{"matching", "typing", memoryGameID, "fill_blanks", "word_chain"}

// memoryGameID is the game id memory-result events are credited to.
const memoryGameID = "memory"

// defaultAchievements returns the fixed achievement set materialized on
// first run.
func defaultAchievements() []*Achievement {
	return []*Achievement{
		{ID: "learned_10", Type: TypeWordsLearned, Name: "First Steps", Description: "Learn 10 words", Threshold: 10},
		{ID: "learned_50", Type: TypeWordsLearned, Name: "Word Collector", Description: "Learn 50 words", Threshold: 50},
		{ID: "learned_100", Type: TypeWordsLearned, Name: "Vocabulary Builder", Description: "Learn 100 words", Threshold: 100},
		{ID: "learned_500", Type: TypeWordsLearned, Name: "Lexicon Master", Description: "Learn 500 words", Threshold: 500},
		{ID: "streak_7", Type: TypeDailyStreak, Name: "One Week Strong", Description: "Learn 7 days in a row", Threshold: 7},
		{ID: "streak_30", Type: TypeDailyStreak, Name: "Monthly Devotion", Description: "Learn 30 days in a row", Threshold: 30},
		{ID: "reviews_100", Type: TypeReviewsCompleted, Name: "Diligent Reviewer", Description: "Complete 100 reviews", Threshold: 100},
		{ID: "game_master", Type: TypeGameMaster, Name: "Game Master", Description: "Play every mini-game at least once", Threshold: len(TrackedGames)},
		{ID: "score_1000", Type: TypeGameScore, Name: "High Scorer", Description: "Score 1000 points in a game", Threshold: 1000},
		{ID: "fill_blanks_10", Type: TypeFillBlanksStreak, Name: "Blank Filler", Description: "Answer 10 fill-in-the-blanks in a row", Threshold: 10},
		{ID: "word_chain_8", Type: TypeWordChain, Name: "Chain Builder", Description: "Build a word chain of length 8", Threshold: 8},
		{ID: "memory_master_5", Type: TypeMemoryMastery, Name: "Memory Master", Description: "Finish 5 memory games with high accuracy", Threshold: 5},
	}
}

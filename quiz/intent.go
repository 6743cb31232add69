package quiz

// IntentKind names the outbound message a handled event asks for.
type IntentKind string

const (
	// IntentNone acknowledges the event without sending anything.
	IntentNone IntentKind = "none"
	// IntentDifficultyPrompt asks the user to choose a difficulty.
	IntentDifficultyPrompt IntentKind = "difficulty_prompt"
	// IntentInvalidDifficulty tells the user their difficulty choice was not recognized.
	IntentInvalidDifficulty IntentKind = "invalid_difficulty"
	// IntentQuestion sends the next flag question.
	IntentQuestion IntentKind = "question"
	// IntentFeedback reports whether the answer was correct.
	IntentFeedback IntentKind = "feedback"
	// IntentGameOver sends the final score summary.
	IntentGameOver IntentKind = "game_over"
)

// Intent is the single outbound message requested by one handled event,
// together with the data needed to compose it.
type Intent struct {
	Kind IntentKind

	// IntentQuestion
	Question Question

	// IntentFeedback
	WasCorrect  bool
	Country     string
	CountryName string

	// IntentGameOver
	Difficulty Difficulty
	Score      int
	Total      int
}

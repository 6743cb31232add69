package quiz

import "github.com/m3rciful/flagbot/quiz/catalog"

// State identifies a step in the per-user conversation state machine.
type State string

const (
	// StateAwaitingDifficulty means the user was prompted to choose a difficulty.
	StateAwaitingDifficulty State = "awaiting_difficulty"
	// StatePlaying means a question was issued and an answer is pending.
	StatePlaying State = "playing"
	// StateAwaitingContinue means feedback was delivered and the next-question ack is pending.
	StateAwaitingContinue State = "awaiting_continue"
	// StateGameOver means the game finished and only a replay request is accepted.
	StateGameOver State = "game_over"
)

// Difficulty selects which country pool a game draws from.
type Difficulty string

const (
	// DifficultyBeginner selects the beginner country pool.
	DifficultyBeginner Difficulty = "beginner"
	// DifficultyHard selects the hard country pool.
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty maps a normalized response value onto a difficulty.
func ParseDifficulty(value string) (Difficulty, bool) {
	switch Difficulty(value) {
	case DifficultyBeginner:
		return DifficultyBeginner, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// Pool returns the fixed country pool for the difficulty.
func (d Difficulty) Pool() []string {
	if d == DifficultyHard {
		return catalog.HardPool
	}
	return catalog.BeginnerPool
}

// Session stores one user's in-progress or completed quiz game.
//
// Invariants: Current is never a member of Remaining once a question has been
// issued; Score <= QuestionsAsked <= MaxQuestions; the session exists in the
// store only after a difficulty prompt was sent.
type Session struct {
	State            State
	Difficulty       Difficulty
	Remaining        []string
	Current          string
	Score            int
	QuestionsAsked   int
	AwaitingContinue bool
}

// NewSession returns a fresh session awaiting a difficulty choice.
// Replay re-initializes through the same path as first contact.
func NewSession() *Session {
	return &Session{State: StateAwaitingDifficulty}
}

// begin switches the session into a running game for the chosen difficulty.
func (s *Session) begin(d Difficulty) {
	s.State = StatePlaying
	s.Difficulty = d
	s.Remaining = append([]string(nil), d.Pool()...)
	s.Current = ""
	s.Score = 0
	s.QuestionsAsked = 0
	s.AwaitingContinue = false
}

// clone returns a deep copy safe to hand out while the original keeps mutating.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Remaining = append([]string(nil), s.Remaining...)
	return &cp
}

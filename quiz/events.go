package quiz

import "strings"

// Button labels the gateway renders and the webhook layer matches against.
// Comparison is case-insensitive exact matching; no fuzzy matching.
const (
	LabelBeginner  = "beginner"
	LabelHard      = "hard"
	LabelNext      = "next"
	LabelPlayAgain = "play again"
)

// EventKind classifies an inbound player action.
type EventKind int

const (
	// EventAnswer carries a country guess for the pending question.
	EventAnswer EventKind = iota
	// EventDifficulty carries a difficulty choice.
	EventDifficulty
	// EventContinue acknowledges feedback and requests the next question.
	EventContinue
	// EventPlayAgain requests a replay after game over.
	EventPlayAgain
)

// Event is one inbound player action derived from a raw webhook payload.
// Value is the normalized response text (trimmed, lower-cased).
type Event struct {
	Kind  EventKind
	Value string
}

// DeriveEvent normalizes a raw response value and classifies it against the
// fixed button labels. Anything that is not a known label is an answer; the
// state machine decides what an answer means in the current state.
func DeriveEvent(raw string) Event {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case LabelBeginner, LabelHard:
		return Event{Kind: EventDifficulty, Value: value}
	case LabelNext, "continue":
		return Event{Kind: EventContinue, Value: value}
	case LabelPlayAgain, "replay":
		return Event{Kind: EventPlayAgain, Value: value}
	}
	return Event{Kind: EventAnswer, Value: value}
}

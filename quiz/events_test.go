package quiz

import "testing"

func TestDeriveEvent(t *testing.T) {
	cases := []struct {
		raw   string
		kind  EventKind
		value string
	}{
		{"beginner", EventDifficulty, "beginner"},
		{"  Hard  ", EventDifficulty, "hard"},
		{"BEGINNER", EventDifficulty, "beginner"},
		{"next", EventContinue, "next"},
		{"Continue", EventContinue, "continue"},
		{"play again", EventPlayAgain, "play again"},
		{"Replay", EventPlayAgain, "replay"},
		{"France", EventAnswer, "france"},
		{"ua", EventAnswer, "ua"},
		{"", EventAnswer, ""},
	}
	for _, tc := range cases {
		ev := DeriveEvent(tc.raw)
		if ev.Kind != tc.kind || ev.Value != tc.value {
			t.Fatalf("DeriveEvent(%q) = {%d %q}, want {%d %q}", tc.raw, ev.Kind, ev.Value, tc.kind, tc.value)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := ParseDifficulty("beginner"); !ok || d != DifficultyBeginner {
		t.Fatalf("beginner: %v %v", d, ok)
	}
	if d, ok := ParseDifficulty("hard"); !ok || d != DifficultyHard {
		t.Fatalf("hard: %v %v", d, ok)
	}
	if _, ok := ParseDifficulty("medium"); ok {
		t.Fatal("medium should not parse")
	}
}

func TestAnswerMatches(t *testing.T) {
	if !answerMatches("ukraine", "ua") {
		t.Fatal("display name should match")
	}
	if !answerMatches("ua", "ua") {
		t.Fatal("code should match")
	}
	if !answerMatches("UKRAINE", "ua") {
		t.Fatal("matching must be case-insensitive")
	}
	if answerMatches("ukrain", "ua") {
		t.Fatal("no fuzzy matching")
	}
	if answerMatches("", "ua") {
		t.Fatal("empty answer never matches")
	}
}

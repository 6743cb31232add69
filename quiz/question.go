package quiz

import (
	"errors"
	"math/rand"

	"github.com/m3rciful/flagbot/quiz/catalog"
)

// optionCount is the size of the choice set offered with every question.
const optionCount = 4

// ErrInsufficientPool reports a difficulty pool too small to build a question.
// It cannot happen with the fixed catalog but is checked before any mutation.
var ErrInsufficientPool = errors.New("quiz: difficulty pool has fewer than 4 countries")

// Question is one flag question ready for dispatch: the country being asked
// and the shuffled display-name options including the correct answer.
type Question struct {
	Country     string
	CountryName string
	Options     []string
}

// NextQuestion draws the next unseen country from the session and builds its
// option set: three distractors drawn without replacement from the full
// difficulty pool, plus the correct country, shuffled.
//
// Precondition: sess.Remaining is non-empty. The session is mutated (country
// removed from Remaining, set as Current) only after the pool check passes.
func NextQuestion(rng *rand.Rand, sess *Session) (Question, error) {
	pool := sess.Difficulty.Pool()
	if len(pool) < optionCount {
		return Question{}, ErrInsufficientPool
	}

	idx := rng.Intn(len(sess.Remaining))
	code := sess.Remaining[idx]
	sess.Remaining = append(sess.Remaining[:idx], sess.Remaining[idx+1:]...)
	sess.Current = code

	distractors := make([]string, 0, len(pool)-1)
	for _, c := range pool {
		if c != code {
			distractors = append(distractors, c)
		}
	}
	rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	codes := append(distractors[:optionCount-1:optionCount-1], code)
	rng.Shuffle(len(codes), func(i, j int) {
		codes[i], codes[j] = codes[j], codes[i]
	})

	q := Question{Country: code, Options: make([]string, 0, optionCount)}
	if name, ok := catalog.Name(code); ok {
		q.CountryName = name
	} else {
		q.CountryName = code
	}
	for _, c := range codes {
		name, ok := catalog.Name(c)
		if !ok {
			name = c
		}
		q.Options = append(q.Options, name)
	}
	return q, nil
}

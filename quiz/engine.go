package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/m3rciful/flagbot/core/logger"
	"github.com/m3rciful/flagbot/quiz/catalog"
)

// MaxQuestions is the fixed per-game question limit.
const MaxQuestions = 5

// Dispatcher delivers composed messages through the chat gateway.
// Each HandleEvent call makes at most one dispatcher call; a failed send is
// surfaced to the caller but never rolls back the applied session mutation.
type Dispatcher interface {
	SendDifficultyPrompt(ctx context.Context, to string) error
	SendInvalidDifficulty(ctx context.Context, to string) error
	SendFlagQuestion(ctx context.Context, to string, q Question) error
	SendFeedback(ctx context.Context, to string, wasCorrect bool, countryName, enrichment string) error
	SendGameOver(ctx context.Context, to string, score, total int) error
}

// Enricher provides optional descriptive text about a flag. Best-effort:
// implementations return "" on any failure.
type Enricher interface {
	DescribeFlag(ctx context.Context, countryName string) string
}

// GameResult captures one finished game for the optional history store.
type GameResult struct {
	UserID     string
	Difficulty Difficulty
	Score      int
	Total      int
	FinishedAt time.Time
}

// Recorder persists finished games. Failures are logged, never surfaced.
type Recorder interface {
	Record(ctx context.Context, res GameResult) error
}

// Engine is the per-user conversation state machine. It consumes one inbound
// event per call, mutates the session under the store's per-key lock, and
// requests the single outbound message the transition calls for.
type Engine struct {
	store    *Store
	disp     Dispatcher
	enrich   Enricher
	recorder Recorder

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option customizes engine construction.
type Option func(*Engine)

// WithRand injects a deterministic random source, used by tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithEnricher wires the optional flag description lookup.
func WithEnricher(enr Enricher) Option {
	return func(e *Engine) { e.enrich = enr }
}

// WithRecorder wires the optional finished-game history store.
func WithRecorder(rec Recorder) Option {
	return func(e *Engine) { e.recorder = rec }
}

// NewEngine constructs the state machine around a session store and dispatcher.
func NewEngine(store *Store, disp Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		disp:  disp,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the session store for inspection in tests and diagnostics.
func (e *Engine) Store() *Store {
	return e.store
}

// StartQuiz initiates a quiz for a user independent of inbound events:
// the session is (re)initialized and the difficulty prompt is sent.
func (e *Engine) StartQuiz(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("quiz: empty user id")
	}
	e.store.Update(userID, func(*Session) *Session {
		return NewSession()
	})
	logger.Info(ctx, "quiz", "quiz.start", slog.String("user_id", userID))
	return e.disp.SendDifficultyPrompt(ctx, userID)
}

// HandleEvent applies one inbound event to the user's session and dispatches
// the resulting outbound message. The transition runs atomically under the
// user's shard lock; dispatch happens after the mutation and its failure does
// not undo it.
func (e *Engine) HandleEvent(ctx context.Context, userID string, ev Event) (Intent, error) {
	if strings.TrimSpace(userID) == "" {
		return Intent{}, fmt.Errorf("quiz: empty user id")
	}

	var (
		intent Intent
		genErr error
	)
	e.store.Update(userID, func(sess *Session) *Session {
		if sess == nil {
			intent = Intent{Kind: IntentDifficultyPrompt}
			return NewSession()
		}
		intent, genErr = e.transition(sess, ev)
		return sess
	})
	if genErr != nil {
		return Intent{}, genErr
	}

	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "quiz", "engine.transition",
			slog.String("user_id", userID),
			slog.String("intent", string(intent.Kind)),
		)
	}

	return intent, e.dispatch(ctx, userID, intent)
}

// transition implements the state/event table. It mutates sess in place and
// reports the outbound intent; sess is left untouched on generation failure.
func (e *Engine) transition(sess *Session, ev Event) (Intent, error) {
	switch sess.State {
	case StateAwaitingDifficulty:
		if ev.Kind != EventDifficulty {
			return Intent{Kind: IntentInvalidDifficulty}, nil
		}
		d, ok := ParseDifficulty(ev.Value)
		if !ok {
			return Intent{Kind: IntentInvalidDifficulty}, nil
		}
		if len(d.Pool()) < optionCount {
			return Intent{}, ErrInsufficientPool
		}
		sess.begin(d)
		q, err := e.nextQuestion(sess)
		if err != nil {
			return Intent{}, err
		}
		return Intent{Kind: IntentQuestion, Question: q}, nil

	case StatePlaying:
		if ev.Kind != EventAnswer || ev.Value == "" {
			return Intent{Kind: IntentNone}, nil
		}
		correct := answerMatches(ev.Value, sess.Current)
		if correct {
			sess.Score++
		}
		sess.QuestionsAsked++
		sess.AwaitingContinue = true
		sess.State = StateAwaitingContinue
		name, ok := catalog.Name(sess.Current)
		if !ok {
			name = sess.Current
		}
		return Intent{
			Kind:        IntentFeedback,
			WasCorrect:  correct,
			Country:     sess.Current,
			CountryName: name,
		}, nil

	case StateAwaitingContinue:
		// Retried or out-of-order answers are acknowledged without effect.
		if ev.Kind != EventContinue {
			return Intent{Kind: IntentNone}, nil
		}
		sess.AwaitingContinue = false
		if sess.QuestionsAsked >= MaxQuestions || len(sess.Remaining) == 0 {
			sess.State = StateGameOver
			return Intent{
				Kind:       IntentGameOver,
				Difficulty: sess.Difficulty,
				Score:      sess.Score,
				Total:      sess.QuestionsAsked,
			}, nil
		}
		q, err := e.nextQuestion(sess)
		if err != nil {
			return Intent{}, err
		}
		sess.State = StatePlaying
		return Intent{Kind: IntentQuestion, Question: q}, nil

	case StateGameOver:
		if ev.Kind == EventPlayAgain {
			*sess = *NewSession()
			return Intent{Kind: IntentDifficultyPrompt}, nil
		}
		return Intent{Kind: IntentNone}, nil
	}

	return Intent{Kind: IntentNone}, nil
}

func (e *Engine) nextQuestion(sess *Session) (Question, error) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return NextQuestion(e.rng, sess)
}

func (e *Engine) dispatch(ctx context.Context, userID string, intent Intent) error {
	switch intent.Kind {
	case IntentDifficultyPrompt:
		return e.disp.SendDifficultyPrompt(ctx, userID)
	case IntentInvalidDifficulty:
		return e.disp.SendInvalidDifficulty(ctx, userID)
	case IntentQuestion:
		return e.disp.SendFlagQuestion(ctx, userID, intent.Question)
	case IntentFeedback:
		var enrichment string
		if e.enrich != nil {
			enrichment = e.enrich.DescribeFlag(ctx, intent.CountryName)
		}
		return e.disp.SendFeedback(ctx, userID, intent.WasCorrect, intent.CountryName, enrichment)
	case IntentGameOver:
		e.recordResult(ctx, userID, intent)
		return e.disp.SendGameOver(ctx, userID, intent.Score, intent.Total)
	}
	return nil
}

// recordResult runs outside the shard lock, so it works only with the data
// snapshotted into the intent during the transition; a racing event may have
// already reset the stored session.
func (e *Engine) recordResult(ctx context.Context, userID string, intent Intent) {
	if e.recorder == nil {
		return
	}
	res := GameResult{
		UserID:     userID,
		Difficulty: intent.Difficulty,
		Score:      intent.Score,
		Total:      intent.Total,
		FinishedAt: time.Now().UTC(),
	}
	if err := e.recorder.Record(ctx, res); err != nil {
		logger.Warn(ctx, "quiz", "result.record.fail",
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// answerMatches compares a normalized answer against the canonical code and
// display name of the pending country. Exact case-insensitive matches only.
func answerMatches(value, code string) bool {
	if strings.EqualFold(value, code) {
		return true
	}
	if name, ok := catalog.Name(code); ok && strings.EqualFold(value, name) {
		return true
	}
	return false
}

package exam

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/session"
	"github.com/abhisek/liuk/internal/store"
)

// History receives a record of every submitted exam.
type History interface {
	SaveAttempt(ctx context.Context, data store.ExamAttemptData) error
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithEnvironment sets the environment the exam locks while running.
func WithEnvironment(env Environment) Option {
	return func(l *Lifecycle) { l.env = env }
}

// WithRecorder sets where missed question ids are recorded.
func WithRecorder(r session.Recorder) Option {
	return func(l *Lifecycle) { l.recorder = r }
}

// WithHistory sets the exam attempt history.
func WithHistory(h History) Option {
	return func(l *Lifecycle) { l.history = h }
}

// WithRand sets the source used to build exam decks.
func WithRand(r *rand.Rand) Option {
	return func(l *Lifecycle) { l.rand = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) { l.logger = logger }
}

// Lifecycle is the exam state machine:
//
//	Ready -> Running -> Submitted | SubmittedForced | Cancelled
//
// Time never advances on its own. Callers pass the current time to Begin,
// Tick and the submit operations.
type Lifecycle struct {
	env      Environment
	recorder session.Recorder
	history  History
	rand     *rand.Rand
	logger   *slog.Logger

	state   State
	ctrl    *session.Controller
	answers []int
	bank    string

	startedAt    time.Time
	deadline     time.Time
	timerRunning bool
	generation   int
	pending      bool
	prevLang     question.Lang

	result    Result
	attemptID uuid.UUID
}

// New creates a Lifecycle in the Ready state.
func New(opts ...Option) *Lifecycle {
	l := &Lifecycle{state: StateReady}
	for _, opt := range opts {
		opt(l)
	}
	if l.env == nil {
		l.env = &nopEnvironment{lang: question.Fallback}
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

// State returns the current state.
func (l *Lifecycle) State() State { return l.state }

// Generation identifies the current timer. It changes on every Begin and
// every exit from Running, so ticks scheduled for an earlier timer can be
// told apart.
func (l *Lifecycle) Generation() int { return l.generation }

// TimerRunning reports whether the countdown is active.
func (l *Lifecycle) TimerRunning() bool {
	return l.state == StateRunning && l.timerRunning
}

// Begin builds an exam deck from pool and starts the countdown. An empty
// candidate set returns ErrNoQuestions and leaves the exam Ready.
func (l *Lifecycle) Begin(pool []question.Question, bank string, now time.Time) error {
	if l.state == StateRunning {
		return ErrAlreadyRunning
	}

	d := deck.Build(pool, deck.Options{Mode: deck.ModeExam, Bank: bank, Rand: l.rand})
	if len(d) == 0 {
		l.reset()
		return ErrNoQuestions
	}

	l.ctrl = session.NewController(deck.ModeExam, nil)
	l.ctrl.Start(d)
	l.answers = make([]int, len(d))
	for i := range l.answers {
		l.answers[i] = NoAnswer
	}
	l.bank = bank
	l.result = Result{}
	l.attemptID = uuid.New()
	l.pending = false

	l.startedAt = now
	l.deadline = now.Add(Duration)
	l.timerRunning = true
	l.generation++

	l.prevLang = l.env.Language()
	l.env.SetLanguageLocked(true)
	l.env.SetExitGuard(true)
	l.state = StateRunning

	l.logger.Info("exam started",
		"attempt", l.attemptID.String(),
		"bank", bank,
		"questions", len(d),
	)
	return nil
}

// Select stores option for the question at pos, overwriting any earlier
// choice.
func (l *Lifecycle) Select(pos, option int) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	if pos < 0 || pos >= len(l.answers) {
		return ErrOutOfRange
	}
	if option < 0 || option >= len(l.ctrl.Deck()[pos].Options.EN) {
		return ErrOutOfRange
	}
	l.answers[pos] = option
	return nil
}

// SelectCurrent stores option for the current question.
func (l *Lifecycle) SelectCurrent(option int) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	return l.Select(l.ctrl.Position(), option)
}

// Clear removes the answer at pos.
func (l *Lifecycle) Clear(pos int) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	if pos < 0 || pos >= len(l.answers) {
		return ErrOutOfRange
	}
	l.answers[pos] = NoAnswer
	return nil
}

// Skip clears the current answer and moves to the next question.
func (l *Lifecycle) Skip() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.answers[l.ctrl.Position()] = NoAnswer
	l.ctrl.Step(1)
	return nil
}

// Next moves forward, wrapping from the last question to the first.
func (l *Lifecycle) Next() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.ctrl.Step(1)
	return nil
}

// Previous moves back, wrapping from the first question to the last.
func (l *Lifecycle) Previous() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.ctrl.Step(-1)
	return nil
}

// JumpTo moves to position i.
func (l *Lifecycle) JumpTo(i int) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	if !l.ctrl.JumpTo(i) {
		return ErrOutOfRange
	}
	return nil
}

// Remaining returns the time left, never negative. It is zero when not
// running.
func (l *Lifecycle) Remaining(now time.Time) time.Duration {
	if !l.TimerRunning() {
		return 0
	}
	if d := l.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RequestSubmit submits the exam. An unforced request with unanswered
// questions returns SubmitPending and waits for ConfirmSubmit or
// DeclineSubmit.
func (l *Lifecycle) RequestSubmit(ctx context.Context, force bool, now time.Time) SubmitOutcome {
	if l.state != StateRunning {
		return SubmitOutcome{Status: SubmitRejected, FirstUnanswered: NoAnswer}
	}
	first, unanswered := l.unanswered()
	if !force && unanswered > 0 {
		l.pending = true
		return SubmitOutcome{Status: SubmitPending, FirstUnanswered: first, Unanswered: unanswered}
	}
	l.submit(ctx, force, now)
	return SubmitOutcome{Status: SubmitDone, FirstUnanswered: first, Unanswered: unanswered}
}

// ConfirmSubmit submits after a pending request.
func (l *Lifecycle) ConfirmSubmit(ctx context.Context, now time.Time) error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.submit(ctx, false, now)
	return nil
}

// DeclineSubmit abandons a pending request and moves to the first
// unanswered question.
func (l *Lifecycle) DeclineSubmit() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.pending = false
	if first, n := l.unanswered(); n > 0 {
		l.ctrl.JumpTo(first)
	}
	return nil
}

// Pending reports whether a submit request awaits confirmation.
func (l *Lifecycle) Pending() bool {
	return l.state == StateRunning && l.pending
}

// Tick advances the countdown for the timer identified by generation. Ticks
// for an older timer or after the exam left Running are ignored. When the
// deadline has passed it submits exactly once and returns true.
func (l *Lifecycle) Tick(ctx context.Context, generation int, now time.Time) bool {
	if !l.TimerRunning() || generation != l.generation {
		return false
	}
	if now.Before(l.deadline) {
		return false
	}
	l.submit(ctx, true, now)
	return true
}

// Cancel abandons a running exam, restoring the language that was active
// before Begin. Nothing is recorded.
func (l *Lifecycle) Cancel() error {
	if l.state != StateRunning {
		return ErrNotRunning
	}
	l.exitRunning()
	l.env.SetLanguage(l.prevLang)
	l.logger.Info("exam cancelled", "attempt", l.attemptID.String())
	l.ctrl = nil
	l.answers = nil
	l.state = StateCancelled
	return nil
}

// Reset returns a finished exam to Ready.
func (l *Lifecycle) Reset() {
	if l.state == StateRunning {
		return
	}
	l.reset()
}

// Result returns the score of a submitted exam.
func (l *Lifecycle) Result() (Result, bool) {
	if !l.state.Submitted() {
		return Result{}, false
	}
	return l.result, true
}

// Deck returns the exam deck, or nil when no exam is held.
func (l *Lifecycle) Deck() deck.Deck {
	if l.ctrl == nil {
		return nil
	}
	return l.ctrl.Deck()
}

// Answers returns a copy of the answers, NoAnswer for empty slots.
func (l *Lifecycle) Answers() []int {
	out := make([]int, len(l.answers))
	copy(out, l.answers)
	return out
}

// Meta returns a view of the exam in lang at now.
func (l *Lifecycle) Meta(lang question.Lang, now time.Time) Meta {
	m := Meta{
		State:     l.state,
		Bank:      l.bank,
		Total:     len(l.answers),
		Remaining: l.Remaining(now),
		Pending:   l.Pending(),
		Chosen:    NoAnswer,
	}
	for _, a := range l.answers {
		if a != NoAnswer {
			m.Answered++
		}
	}
	if l.state != StateRunning {
		return m
	}
	m.Position = l.ctrl.Position()
	if q, ok := l.ctrl.Current(); ok {
		m.Question = q.Text.Resolve(lang)
		m.Options = q.Options.Resolve(lang)
		m.Chosen = l.answers[m.Position]
	}
	return m
}

// exitRunning stops the timer and releases everything Begin acquired. It
// runs before scoring so no tick can act on a submitted exam.
func (l *Lifecycle) exitRunning() {
	l.timerRunning = false
	l.generation++
	l.pending = false
	l.env.SetExitGuard(false)
	l.env.SetLanguageLocked(false)
}

func (l *Lifecycle) submit(ctx context.Context, forced bool, now time.Time) {
	l.exitRunning()

	d := l.ctrl.Deck()
	res := Result{Total: len(d), Forced: forced}
	for i, q := range d {
		a := l.answers[i]
		switch {
		case a == NoAnswer:
			res.Unanswered++
			l.record(ctx, q.ID)
		case q.IsCorrect(a):
			res.Correct++
		default:
			l.record(ctx, q.ID)
		}
	}
	res.Passed = res.Correct >= PassMark

	l.result = res
	l.ctrl.Finish()
	if forced {
		l.state = StateSubmittedForced
	} else {
		l.state = StateSubmitted
	}

	l.logger.Info("exam submitted",
		"attempt", l.attemptID.String(),
		"correct", res.Correct,
		"total", res.Total,
		"passed", res.Passed,
		"forced", forced,
	)
	l.saveAttempt(ctx, now)
}

func (l *Lifecycle) saveAttempt(ctx context.Context, now time.Time) {
	if l.history == nil {
		return
	}
	elapsed := now.Sub(l.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > Duration {
		elapsed = Duration
	}
	err := l.history.SaveAttempt(ctx, store.ExamAttemptData{
		ID:           l.attemptID,
		TakenAt:      now,
		Bank:         l.bank,
		Total:        l.result.Total,
		Correct:      l.result.Correct,
		Unanswered:   l.result.Unanswered,
		Passed:       l.result.Passed,
		Forced:       l.result.Forced,
		DurationSecs: int64(elapsed / time.Second),
	})
	if err != nil {
		l.logger.Warn("save exam attempt", "error", err)
	}
}

func (l *Lifecycle) record(ctx context.Context, id int) {
	if l.recorder != nil {
		l.recorder.Record(ctx, id)
	}
}

func (l *Lifecycle) unanswered() (first, n int) {
	first = NoAnswer
	for i, a := range l.answers {
		if a != NoAnswer {
			continue
		}
		if first == NoAnswer {
			first = i
		}
		n++
	}
	return first, n
}

func (l *Lifecycle) reset() {
	l.state = StateReady
	l.ctrl = nil
	l.answers = nil
	l.pending = false
	l.result = Result{}
}

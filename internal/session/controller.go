package session

import (
	"context"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/question"
)

// Controller owns the state of one practice session: quiz, flashcards or
// review of missed questions. The exam lifecycle drives a Controller in
// ModeExam for deck ownership and navigation only.
type Controller struct {
	mode     deck.Mode
	recorder Recorder

	deck     deck.Deck
	phase    Phase
	position int
	score    int
	wrong    int
	revealed bool

	// chosen holds the final answer per deck position, NoChoice until
	// answered. It survives moving back and forth.
	chosen []int
}

// NewController creates an idle controller. recorder may be nil.
func NewController(mode deck.Mode, recorder Recorder) *Controller {
	return &Controller{mode: mode, recorder: recorder}
}

// Start resets counters and begins d. An empty deck finishes immediately.
func (c *Controller) Start(d deck.Deck) {
	c.deck = d
	c.position = 0
	c.score = 0
	c.wrong = 0
	c.chosen = make([]int, len(d))
	for i := range c.chosen {
		c.chosen[i] = NoChoice
	}
	c.revealed = false
	if len(d) == 0 {
		c.phase = PhaseFinished
		return
	}
	c.phase = PhaseActive
}

// Mode returns the session mode.
func (c *Controller) Mode() deck.Mode { return c.mode }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Position returns the current deck index.
func (c *Controller) Position() int { return c.position }

// Len returns the deck length.
func (c *Controller) Len() int { return len(c.deck) }

// Deck returns the working deck. Callers must not mutate it.
func (c *Controller) Deck() deck.Deck { return c.deck }

// Current returns the question at the current position.
func (c *Controller) Current() (question.Question, bool) {
	if c.position < 0 || c.position >= len(c.deck) {
		return question.Question{}, false
	}
	return c.deck[c.position], true
}

// Select answers the current quiz or review question. It is final: once a
// question is answered further selections are ignored. Returns whether the
// selection was accepted.
func (c *Controller) Select(ctx context.Context, option int) bool {
	if c.phase != PhaseActive || c.answeredAt(c.position) {
		return false
	}
	if c.mode != deck.ModeQuiz && c.mode != deck.ModeReview {
		return false
	}
	q, ok := c.Current()
	if !ok || option < 0 || option >= len(q.Options.EN) {
		return false
	}

	c.chosen[c.position] = option
	if q.IsCorrect(option) {
		c.score++
	} else {
		c.wrong++
		c.record(ctx, q.ID)
	}
	return true
}

// Reveal shows the answer of the current flashcard.
func (c *Controller) Reveal() {
	if c.phase == PhaseActive && c.mode == deck.ModeFlash {
		c.revealed = true
	}
}

// MarkWrong records the current flashcard as missed and advances.
func (c *Controller) MarkWrong(ctx context.Context) {
	if c.phase != PhaseActive || c.mode != deck.ModeFlash {
		return
	}
	if q, ok := c.Current(); ok {
		c.record(ctx, q.ID)
	}
	c.Advance()
}

// Advance moves to the next question, finishing after the last one.
func (c *Controller) Advance() {
	if c.phase != PhaseActive {
		return
	}
	if c.position < len(c.deck)-1 {
		c.position++
		c.resetQuestion()
		return
	}
	c.Finish()
}

// Retreat moves to the previous question, wrapping from the first to the
// last.
func (c *Controller) Retreat() {
	c.Step(-1)
}

// Step moves delta positions cyclically. Used by exam navigation.
func (c *Controller) Step(delta int) {
	if c.phase != PhaseActive || len(c.deck) == 0 {
		return
	}
	n := len(c.deck)
	c.position = ((c.position+delta)%n + n) % n
	c.resetQuestion()
}

// JumpTo moves to position i. Out-of-range values are ignored.
func (c *Controller) JumpTo(i int) bool {
	if c.phase != PhaseActive || i < 0 || i >= len(c.deck) {
		return false
	}
	c.position = i
	c.resetQuestion()
	return true
}

// Finish ends the session. Later calls that mutate state are ignored.
func (c *Controller) Finish() {
	if c.phase == PhaseIdle {
		return
	}
	c.phase = PhaseFinished
}

// Summary returns the tally of the session.
func (c *Controller) Summary() Summary {
	return Summary{Mode: c.mode, Total: len(c.deck), Score: c.score, WrongCount: c.wrong}
}

// Snapshot returns a read-only view for rendering in lang.
func (c *Controller) Snapshot(lang question.Lang) Snapshot {
	snap := Snapshot{
		Mode:       c.mode,
		Phase:      c.phase,
		Position:   c.position,
		Length:     len(c.deck),
		Score:      c.score,
		WrongCount: c.wrong,
		Answered:   c.answeredAt(c.position),
		Chosen:     c.choiceAt(c.position),
		Revealed:   c.revealed,
	}
	if c.phase == PhaseActive {
		if q, ok := c.Current(); ok {
			snapshotQuestion(&snap, q, lang)
		}
	}
	return snap
}

// resetQuestion clears per-visit state. Answers stay with their position.
func (c *Controller) resetQuestion() {
	c.revealed = false
}

func (c *Controller) choiceAt(i int) int {
	if i < 0 || i >= len(c.chosen) {
		return NoChoice
	}
	return c.chosen[i]
}

func (c *Controller) answeredAt(i int) bool {
	return c.choiceAt(i) != NoChoice
}

func (c *Controller) record(ctx context.Context, id int) {
	if c.recorder != nil {
		c.recorder.Record(ctx, id)
	}
}

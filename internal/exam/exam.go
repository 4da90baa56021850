// Package exam runs a timed mock exam: a fixed-size deck, a countdown,
// language locking and forced submission when time runs out.
package exam

import (
	"errors"
	"time"

	"github.com/abhisek/liuk/internal/question"
)

const (
	// Duration is the length of an exam.
	Duration = 45 * time.Minute

	// PassMark is the number of correct answers required to pass. It does not
	// scale with the deck length.
	PassMark = 18
)

// NoAnswer marks an unanswered slot.
const NoAnswer = -1

var (
	ErrNotRunning     = errors.New("exam is not running")
	ErrAlreadyRunning = errors.New("exam is already running")
	ErrNoQuestions    = errors.New("no questions available for this exam")
	ErrOutOfRange     = errors.New("position or option out of range")
)

// State is the lifecycle state of an exam.
type State int

const (
	StateReady State = iota
	StateRunning
	StateSubmitted       // submitted by the candidate
	StateSubmittedForced // submitted by the countdown reaching zero
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateSubmitted:
		return "submitted"
	case StateSubmittedForced:
		return "submitted-forced"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Submitted reports whether s is one of the submitted states.
func (s State) Submitted() bool {
	return s == StateSubmitted || s == StateSubmittedForced
}

// Environment is the part of the surrounding program the exam controls
// while running.
type Environment interface {
	Language() question.Lang
	SetLanguage(question.Lang)
	// SetLanguageLocked disables language switching while locked.
	SetLanguageLocked(bool)
	// SetExitGuard asks the program to confirm before quitting.
	SetExitGuard(bool)
}

// SubmitStatus is the outcome of a submit request.
type SubmitStatus int

const (
	SubmitRejected SubmitStatus = iota // not running
	SubmitPending                      // unanswered questions need confirmation
	SubmitDone
)

// SubmitOutcome is returned by RequestSubmit.
type SubmitOutcome struct {
	Status SubmitStatus
	// FirstUnanswered is the first unanswered position when Pending.
	FirstUnanswered int
	Unanswered      int
}

// Result is the score of a submitted exam.
type Result struct {
	Correct    int
	Total      int
	Unanswered int
	Passed     bool
	Forced     bool
}

// Meta is a read-only view of a running or finished exam for rendering.
type Meta struct {
	State     State
	Bank      string
	Position  int
	Total     int
	Answered  int
	Remaining time.Duration
	Pending   bool

	Question string
	Options  []string
	Chosen   int
}

// RemainingSeconds returns whole seconds left, never negative.
func (m Meta) RemainingSeconds() int {
	if m.Remaining <= 0 {
		return 0
	}
	return int(m.Remaining / time.Second)
}

// nopEnvironment keeps the language locally when no environment is given.
type nopEnvironment struct {
	lang question.Lang
}

func (e *nopEnvironment) Language() question.Lang { return e.lang }
func (e *nopEnvironment) SetLanguage(l question.Lang) { e.lang = l }
func (e *nopEnvironment) SetLanguageLocked(bool) {}
func (e *nopEnvironment) SetExitGuard(bool) {}

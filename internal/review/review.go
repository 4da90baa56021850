// Package review walks a finished exam question by question.
package review

import (
	"errors"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/question"
)

// NoAnswer marks a question left unanswered.
const NoAnswer = -1

// ErrOutOfRange is returned by JumpTo for a position outside the deck.
var ErrOutOfRange = errors.New("review position out of range")

// Mark is the outcome of one question in the position strip.
type Mark int

const (
	MarkIncorrect Mark = iota // wrong or unanswered
	MarkCorrect
)

// Item is the review view of one question.
type Item struct {
	Position int
	Total    int
	ID       int
	Topic    string
	Question string
	Options  []string
	Chosen   int // NoAnswer when unanswered
	Correct  int
}

// Answered reports whether the candidate chose an option.
func (it Item) Answered() bool {
	return it.Chosen != NoAnswer
}

// IsCorrect reports whether the chosen option was right.
func (it Item) IsCorrect() bool {
	return it.Chosen == it.Correct
}

// Navigator is a read-only cyclic cursor over a finished exam.
type Navigator struct {
	deck     deck.Deck
	answers  []int
	position int
}

// New copies d and answers. Missing answers are treated as unanswered.
func New(d deck.Deck, answers []int) *Navigator {
	n := &Navigator{
		deck:    make(deck.Deck, len(d)),
		answers: make([]int, len(d)),
	}
	for i, q := range d {
		n.deck[i] = q.Clone()
		n.answers[i] = NoAnswer
		if i < len(answers) {
			n.answers[i] = answers[i]
		}
	}
	return n
}

// Len returns the number of questions.
func (n *Navigator) Len() int { return len(n.deck) }

// Position returns the current index.
func (n *Navigator) Position() int { return n.position }

// Next moves forward, wrapping to the first question.
func (n *Navigator) Next() {
	n.step(1)
}

// Previous moves back, wrapping to the last question.
func (n *Navigator) Previous() {
	n.step(-1)
}

// JumpTo moves to position i.
func (n *Navigator) JumpTo(i int) error {
	if i < 0 || i >= len(n.deck) {
		return ErrOutOfRange
	}
	n.position = i
	return nil
}

// Current returns the item at the cursor in lang. ok is false for an empty
// review.
func (n *Navigator) Current(lang question.Lang) (Item, bool) {
	if len(n.deck) == 0 {
		return Item{}, false
	}
	q := n.deck[n.position]
	return Item{
		Position: n.position,
		Total:    len(n.deck),
		ID:       q.ID,
		Topic:    q.Topic,
		Question: q.Text.Resolve(lang),
		Options:  q.Options.Resolve(lang),
		Chosen:   n.answers[n.position],
		Correct:  q.CorrectIndex,
	}, true
}

// Strip returns one mark per question in deck order.
func (n *Navigator) Strip() []Mark {
	marks := make([]Mark, len(n.deck))
	for i, q := range n.deck {
		if a := n.answers[i]; a != NoAnswer && q.IsCorrect(a) {
			marks[i] = MarkCorrect
		}
	}
	return marks
}

func (n *Navigator) step(delta int) {
	size := len(n.deck)
	if size == 0 {
		return
	}
	n.position = ((n.position+delta)%size + size) % size
}

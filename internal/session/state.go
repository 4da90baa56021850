package session

import (
	"context"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/question"
)

// Phase represents the lifecycle phase of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // No deck started yet
	PhaseActive                // Serving questions
	PhaseFinished              // Deck exhausted or finished explicitly
)

// NoChoice marks an unanswered question in snapshots.
const NoChoice = -1

// Recorder receives the ids of missed questions.
type Recorder interface {
	Record(ctx context.Context, id int)
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	Mode     deck.Mode
	Phase    Phase
	Position int
	Length   int

	// Score and WrongCount are the running quiz/review tallies.
	Score      int
	WrongCount int

	// Current question fields; zero when the deck is empty or finished.
	QuestionID   int
	Topic        string
	Question     string
	Options      []string
	CorrectIndex int

	// Answered is set once a quiz/review answer is final. Chosen is the
	// selected option or NoChoice.
	Answered bool
	Chosen   int

	// Revealed is set when a flashcard answer is shown.
	Revealed bool
}

// Empty reports whether there was nothing to play.
func (s Snapshot) Empty() bool {
	return s.Length == 0
}

// Summary is the final tally of a finished practice session.
type Summary struct {
	Mode       deck.Mode
	Total      int
	Score      int
	WrongCount int
}

// Accuracy returns Score over answered questions, 0 when none were answered.
func (s Summary) Accuracy() float64 {
	answered := s.Score + s.WrongCount
	if answered == 0 {
		return 0
	}
	return float64(s.Score) / float64(answered)
}

func snapshotQuestion(snap *Snapshot, q question.Question, lang question.Lang) {
	snap.QuestionID = q.ID
	snap.Topic = q.Topic
	snap.Question = q.Text.Resolve(lang)
	snap.Options = q.Options.Resolve(lang)
	snap.CorrectIndex = q.CorrectIndex
}

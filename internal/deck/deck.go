package deck

import (
	"math/rand/v2"
	"strings"

	"github.com/abhisek/liuk/internal/question"
)

// Mode selects how a deck is built and played.
type Mode string

const (
	ModeQuiz   Mode = "quiz"
	ModeFlash  Mode = "flash"
	ModeReview Mode = "review"
	ModeExam   Mode = "exam"
)

// ParseMode maps a name to a Mode, defaulting to ModeQuiz.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeFlash, ModeReview, ModeExam:
		return Mode(s)
	default:
		return ModeQuiz
	}
}

// AllBanks disables bank filtering.
const AllBanks = "all"

// ExamSize is the number of questions in an exam deck.
const ExamSize = 24

// Deck is a per-session working copy of pool questions.
type Deck []question.Question

// Options configures Build.
type Options struct {
	Mode Mode

	// Bank is AllBanks (or empty) or a literal, case-sensitive topic prefix.
	Bank string

	// WrongIDs restricts a review deck. Ignored by other modes.
	WrongIDs map[int]bool

	// Rand drives both shuffles. Nil uses a randomly seeded source.
	Rand *rand.Rand
}

// Build filters pool and returns a freshly shuffled deck of deep copies.
// Each copy has its options shuffled with CorrectIndex updated. An empty
// result is a valid deck.
func Build(pool []question.Question, opts Options) Deck {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	candidates := make([]question.Question, 0, len(pool))
	for _, q := range pool {
		if !InBank(q, opts.Bank) {
			continue
		}
		if opts.Mode == ModeReview && !opts.WrongIDs[q.ID] {
			continue
		}
		candidates = append(candidates, q)
	}

	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if opts.Mode == ModeExam && len(candidates) > ExamSize {
		candidates = candidates[:ExamSize]
	}

	d := make(Deck, len(candidates))
	for i, q := range candidates {
		c := q.Clone()
		question.ShuffleOptions(&c, r)
		d[i] = c
	}
	return d
}

// InBank reports whether q belongs to bank.
func InBank(q question.Question, bank string) bool {
	if bank == "" || bank == AllBanks {
		return true
	}
	return strings.HasPrefix(q.Topic, bank)
}

// Banks lists the distinct topics of pool in first-seen order.
func Banks(pool []question.Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range pool {
		if q.Topic == "" || seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		out = append(out, q.Topic)
	}
	return out
}

// IDs returns the question ids of d in deck order.
func (d Deck) IDs() []int {
	ids := make([]int, len(d))
	for i, q := range d {
		ids[i] = q.ID
	}
	return ids
}

package question

import (
	"fmt"
	"math/rand/v2"
)

// Lang is a content language code.
type Lang string

const (
	English Lang = "en"
	Chinese Lang = "zh"
)

// Fallback is the language every question is guaranteed to carry.
const Fallback = English

// ParseLang maps a user-supplied code to a supported language.
// Unknown codes resolve to Fallback.
func ParseLang(s string) Lang {
	switch Lang(s) {
	case Chinese:
		return Chinese
	default:
		return English
	}
}

// Toggle returns the other supported language.
func (l Lang) Toggle() Lang {
	if l == Chinese {
		return English
	}
	return Chinese
}

// Text is a localized string with an English base.
type Text struct {
	EN string
	ZH string
}

// Resolve returns the text for lang. Precedence: the requested language when
// non-empty, then Fallback.
func (t Text) Resolve(lang Lang) string {
	if lang == Chinese && t.ZH != "" {
		return t.ZH
	}
	return t.EN
}

// Options holds index-aligned option lists. ZH may be shorter than EN or
// empty; missing entries fall back to EN per index.
type Options struct {
	EN []string
	ZH []string
}

// Resolve returns the visible option list for lang. The result always has
// len(EN) entries.
func (o Options) Resolve(lang Lang) []string {
	out := make([]string, len(o.EN))
	for i, en := range o.EN {
		out[i] = en
		if lang == Chinese && i < len(o.ZH) && o.ZH[i] != "" {
			out[i] = o.ZH[i]
		}
	}
	return out
}

// Question is a single multiple-choice item.
type Question struct {
	ID           int
	Topic        string
	Text         Text
	Options      Options
	CorrectIndex int
}

// Validate reports whether the question satisfies its load-time invariants.
func (q Question) Validate() error {
	if q.Text.EN == "" {
		return fmt.Errorf("question %d: missing english text", q.ID)
	}
	if len(q.Options.EN) == 0 {
		return fmt.Errorf("question %d: no english options", q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options.EN) {
		return fmt.Errorf("question %d: answer index %d out of range [0,%d)", q.ID, q.CorrectIndex, len(q.Options.EN))
	}
	return nil
}

// Clone returns a deep copy so deck mutations never reach the pool.
func (q Question) Clone() Question {
	c := q
	c.Options.EN = append([]string(nil), q.Options.EN...)
	if q.Options.ZH != nil {
		c.Options.ZH = append([]string(nil), q.Options.ZH...)
	}
	return c
}

// IsCorrect reports whether option i is the correct answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// ShuffleOptions permutes both option lists with one shared permutation and
// moves CorrectIndex along with the originally correct option. A partial ZH
// list is first widened to len(EN) with English fallbacks so the two lists
// stay index-aligned after the move.
func ShuffleOptions(q *Question, r *rand.Rand) {
	n := len(q.Options.EN)
	if n < 2 {
		return
	}
	perm := r.Perm(n)

	var zh []string
	if len(q.Options.ZH) > 0 {
		zh = make([]string, n)
		for i := range n {
			if i < len(q.Options.ZH) && q.Options.ZH[i] != "" {
				zh[i] = q.Options.ZH[i]
			} else {
				zh[i] = q.Options.EN[i]
			}
		}
	}

	en := make([]string, n)
	var newZH []string
	if zh != nil {
		newZH = make([]string, n)
	}
	correct := q.CorrectIndex
	for dst, src := range perm {
		en[dst] = q.Options.EN[src]
		if newZH != nil {
			newZH[dst] = zh[src]
		}
		if src == q.CorrectIndex {
			correct = dst
		}
	}

	q.Options.EN = en
	q.Options.ZH = newZH
	q.CorrectIndex = correct
}

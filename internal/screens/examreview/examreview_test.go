package examreview

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/review"
	"github.com/abhisek/liuk/internal/screens/deps"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeck() deck.Deck {
	mk := func(id int, text string) question.Question {
		return question.Question{
			ID:           id,
			Topic:        "History",
			Text:         question.Text{EN: text, ZH: "问题"},
			Options:      question.Options{EN: []string{"right", "wrong"}, ZH: []string{"对", "错"}},
			CorrectIndex: 0,
		}
	}
	return deck.Deck{mk(1, "First?"), mk(2, "Second?"), mk(3, "Third?")}
}

func testScreen(lang question.Lang) *ReviewScreen {
	d := &deps.Deps{Prefs: prefs.Open(context.Background(), nil, nil, lang)}
	return New(d, testDeck(), []int{0, 1, review.NoAnswer})
}

func TestReview_Title(t *testing.T) {
	if got := testScreen(question.English).Title(); got != "Exam Review" {
		t.Errorf("title = %q", got)
	}
}

func TestReview_ViewShowsAnswers(t *testing.T) {
	s := testScreen(question.English)

	view := s.View(100, 40)
	for _, want := range []string{"First?", "Your answer: A) right", "Correct answer: A) right", "[✓]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(keyPress('n'))
	if !strings.Contains(s.View(100, 40), "Your answer: B) wrong") {
		t.Error("second question should show the wrong pick")
	}

	s.Update(keyPress('n'))
	if !strings.Contains(s.View(100, 40), "Your answer: (none)") {
		t.Error("third question should show it was unanswered")
	}
}

func TestReview_ViewFollowsLanguage(t *testing.T) {
	s := testScreen(question.Chinese)
	view := s.View(100, 40)
	if !strings.Contains(view, "问题") || !strings.Contains(view, "正确答案：A) 对") {
		t.Error("review should render in Chinese")
	}
}

func TestReview_NavigationWraps(t *testing.T) {
	s := testScreen(question.English)
	s.Update(keyPress('p'))
	if got := s.Navigator().Position(); got != 2 {
		t.Errorf("previous from first = %d, want 2", got)
	}
	s.Update(specialKey(tea.KeyRight))
	if got := s.Navigator().Position(); got != 0 {
		t.Errorf("next from last = %d, want 0", got)
	}
}

func TestReview_JumpTo(t *testing.T) {
	s := testScreen(question.English)

	s.Update(keyPress('g'))
	if !s.HandlesBack() {
		t.Fatal("jump prompt should keep Esc")
	}
	s.Update(keyPress('3'))
	s.Update(specialKey(tea.KeyEnter))

	if got := s.Navigator().Position(); got != 2 {
		t.Errorf("position after jump = %d, want 2", got)
	}
	if s.HandlesBack() {
		t.Error("prompt should close after a valid jump")
	}
}

func TestReview_JumpTo_Invalid(t *testing.T) {
	s := testScreen(question.English)

	s.Update(keyPress('g'))
	s.Update(keyPress('9'))
	s.Update(specialKey(tea.KeyEnter))

	if got := s.Navigator().Position(); got != 0 {
		t.Errorf("invalid jump moved to %d", got)
	}
	if !s.HandlesBack() {
		t.Error("prompt should stay open after an invalid number")
	}
	if !strings.Contains(s.View(100, 40), "Enter a number from 1 to 3.") {
		t.Error("view should explain the valid range")
	}

	s.Update(specialKey(tea.KeyEscape))
	if s.HandlesBack() {
		t.Error("Esc should close the prompt")
	}
}

func TestReview_JumpPromptIgnoresLetters(t *testing.T) {
	s := testScreen(question.English)
	s.Update(keyPress('g'))
	s.Update(keyPress('n'))
	if got := s.Navigator().Position(); got != 0 {
		t.Error("keys typed into the prompt must not navigate")
	}
	if s.input.Value() != "" {
		t.Errorf("numeric prompt accepted %q", s.input.Value())
	}
}

func TestReview_Empty(t *testing.T) {
	d := &deps.Deps{Prefs: prefs.Open(context.Background(), nil, nil, question.English)}
	s := New(d, nil, nil)
	if !strings.Contains(s.View(80, 24), "Nothing to review.") {
		t.Error("empty review should say so")
	}
}

// Package practice is the untimed quiz, flashcard and review screen.
package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/screens/summary"
	"github.com/abhisek/liuk/internal/session"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
)

// PracticeScreen plays one deck through a session.Controller.
type PracticeScreen struct {
	deps   *deps.Deps
	mode   deck.Mode
	ctrl   *session.Controller
	cursor int
	tipKey string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New builds a fresh deck for mode from pool and starts it.
func New(d *deps.Deps, mode deck.Mode, pool []question.Question, bank string) *PracticeScreen {
	dk := deck.Build(pool, deck.Options{
		Mode:     mode,
		Bank:     bank,
		WrongIDs: d.Wrong.Set(),
		Rand:     d.Rand,
	})

	ctrl := session.NewController(mode, d.Wrong)
	ctrl.Start(dk)

	s := &PracticeScreen{deps: d, mode: mode, ctrl: ctrl}
	switch {
	case mode == deck.ModeReview && len(dk) > 0:
		s.tipKey = "practice.review_intro"
	case mode == deck.ModeReview:
		s.tipKey = "practice.review_empty"
	case mode == deck.ModeFlash:
		s.tipKey = "practice.flash_tip"
	}

	d.Log().Info("practice started", "mode", string(mode), "bank", bank, "questions", len(dk))
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return s.deps.T("practice.title." + string(s.mode))
}

// Snapshot returns the current session view.
func (s *PracticeScreen) Snapshot() session.Snapshot {
	return s.ctrl.Snapshot(s.deps.Lang())
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	snap := s.Snapshot()
	back := layout.KeyHint{Key: "Esc", Description: s.deps.T("hint.back")}
	if snap.Empty() {
		return []layout.KeyHint{back}
	}
	if s.mode == deck.ModeFlash {
		return []layout.KeyHint{
			{Key: "Space", Description: s.deps.T("hint.reveal")},
			{Key: "W", Description: s.deps.T("hint.mark_wrong")},
			{Key: "Enter", Description: s.deps.T("hint.next")},
			{Key: "P", Description: s.deps.T("hint.prev")},
			back,
		}
	}
	if snap.Answered {
		return []layout.KeyHint{
			{Key: "Enter", Description: s.deps.T("hint.next")},
			{Key: "P", Description: s.deps.T("hint.prev")},
			back,
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: s.deps.T("hint.select")},
		{Key: "↑↓", Description: s.deps.T("hint.navigate")},
		{Key: "P", Description: s.deps.T("hint.prev")},
		back,
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMadeMsg:
		s.ctrl.Select(context.Background(), msg.Index)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	snap := s.Snapshot()
	if snap.Empty() || snap.Phase != session.PhaseActive {
		return s, nil
	}

	ctx := context.Background()
	key := msg.String()

	switch key {
	case "p", "left":
		s.ctrl.Retreat()
		s.cursor = 0
		return s, nil
	}

	if s.mode == deck.ModeFlash {
		switch key {
		case "space", " ", "r":
			s.ctrl.Reveal()
		case "w", "x":
			s.ctrl.MarkWrong(ctx)
			return s.afterMove()
		case "enter", "n", "right":
			s.ctrl.Advance()
			return s.afterMove()
		}
		return s, nil
	}

	if snap.Answered {
		switch key {
		case "enter", "n", "right", "space", " ":
			s.ctrl.Advance()
			return s.afterMove()
		}
		return s, nil
	}

	mc := s.choice(snap)
	var cmd tea.Cmd
	mc, cmd = mc.Update(msg)
	s.cursor = mc.Cursor
	return s, cmd
}

// afterMove resets the cursor and hands off to the summary when the deck is
// exhausted.
func (s *PracticeScreen) afterMove() (screen.Screen, tea.Cmd) {
	s.cursor = 0
	if s.ctrl.Phase() != session.PhaseFinished {
		return s, nil
	}
	sum := s.ctrl.Summary()
	s.deps.Log().Info("practice finished",
		"mode", string(sum.Mode), "total", sum.Total, "correct", sum.Score, "wrong", sum.WrongCount)
	next := summary.New(s.deps, sum)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// choice builds the option list component for snap.
func (s *PracticeScreen) choice(snap session.Snapshot) components.MultiChoice {
	mc := components.NewMultiChoice(snap.Question, snap.Options, snap.CorrectIndex)
	mc.Cursor = s.cursor
	mc.Chosen = snap.Chosen

	switch {
	case s.mode == deck.ModeFlash && snap.Revealed:
		mc.Mode = components.ChoiceRevealed
		mc.RevealPrefix = s.deps.T("practice.answer")
	case s.mode == deck.ModeFlash:
		mc.Mode = components.ChoiceStatic
	case snap.Answered:
		mc.Mode = components.ChoiceLocked
	}
	return mc
}

// Package exam is the timed mock exam screen: a ready gate, the running
// exam with its countdown, and the result.
package exam

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/deck"
	ex "github.com/abhisek/liuk/internal/exam"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/screens/examreview"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
)

// ExamScreen drives one exam.Lifecycle.
type ExamScreen struct {
	deps *deps.Deps
	pool []question.Question
	bank string
	lc   *ex.Lifecycle

	begin      components.Button
	candidates int
	noQuestion bool

	confirm    confirmKind
	unanswered int
	cursor     int
	position   int
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.BackHandler = (*ExamScreen)(nil)

// New creates an exam screen in the Ready state for bank.
func New(d *deps.Deps, pool []question.Question, bank string) *ExamScreen {
	opts := []ex.Option{
		ex.WithRand(d.Rand),
		ex.WithLogger(d.Log()),
	}
	if d.Prefs != nil {
		opts = append(opts, ex.WithEnvironment(d.Prefs))
	}
	if d.Wrong != nil {
		opts = append(opts, ex.WithRecorder(d.Wrong))
	}
	if d.Attempts != nil {
		opts = append(opts, ex.WithHistory(d.Attempts))
	}

	s := &ExamScreen{
		deps: d,
		pool: pool,
		bank: bank,
		lc:   ex.New(opts...),
	}
	for _, q := range pool {
		if deck.InBank(q, bank) {
			s.candidates++
		}
	}
	s.begin = components.NewButton("", true, nil)
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamScreen) Title() string {
	return s.deps.T("exam.title")
}

// Lifecycle exposes the exam state machine.
func (s *ExamScreen) Lifecycle() *ex.Lifecycle {
	return s.lc
}

// HandlesBack keeps Esc inside the screen while the exam runs.
func (s *ExamScreen) HandlesBack() bool {
	return s.lc.State() == ex.StateRunning
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm != confirmNone:
		return []layout.KeyHint{
			{Key: "Y", Description: s.deps.T("hint.yes")},
			{Key: "N", Description: s.deps.T("hint.no")},
		}
	case s.lc.State() == ex.StateRunning:
		return []layout.KeyHint{
			{Key: "1-4", Description: s.deps.T("hint.select")},
			{Key: "←→", Description: s.deps.T("hint.navigate")},
			{Key: "S", Description: s.deps.T("hint.skip")},
			{Key: "X", Description: s.deps.T("hint.clear")},
			{Key: "F", Description: s.deps.T("hint.submit")},
			{Key: "Esc", Description: s.deps.T("hint.cancel")},
		}
	case s.lc.State().Submitted():
		return []layout.KeyHint{
			{Key: "Enter", Description: s.deps.T("hint.review")},
			{Key: "Esc", Description: s.deps.T("hint.back")},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.deps.T("hint.begin")},
			{Key: "Esc", Description: s.deps.T("hint.back")},
		}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)

	case components.ChoiceMadeMsg:
		if s.confirm == confirmNone {
			s.warn("select", s.lc.SelectCurrent(msg.Index))
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case s.confirm != confirmNone:
			return s.handleConfirmKey(msg)
		case s.lc.State() == ex.StateRunning:
			return s.handleRunningKey(msg)
		case s.lc.State().Submitted():
			return s.handleResultKey(msg)
		default:
			return s.handleReadyKey(msg)
		}
	}
	return s, nil
}

func (s *ExamScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.Generation != s.lc.Generation() {
		return s, nil
	}
	if s.lc.Tick(context.Background(), msg.Generation, msg.At) {
		s.confirm = confirmNone
		return s, nil
	}
	if s.lc.TimerRunning() {
		return s, tickCmd(s.lc.Generation())
	}
	return s, nil
}

func (s *ExamScreen) handleReadyKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.begin.OnPress = s.start
	var cmd tea.Cmd
	s.begin, cmd = s.begin.Update(msg)
	return s, cmd
}

func (s *ExamScreen) start() tea.Cmd {
	err := s.lc.Begin(s.pool, s.bank, s.deps.Now())
	if errors.Is(err, ex.ErrNoQuestions) {
		s.noQuestion = true
		return nil
	}
	if err != nil {
		s.deps.Log().Error("exam begin failed", "error", err)
		return nil
	}
	s.noQuestion = false
	s.syncCursor()
	return tickCmd(s.lc.Generation())
}

func (s *ExamScreen) handleRunningKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "esc":
		s.confirm = confirmCancel
		return s, nil
	case "f":
		out := s.lc.RequestSubmit(ctx, false, s.deps.Now())
		if out.Status == ex.SubmitPending {
			s.confirm = confirmSubmit
			s.unanswered = out.Unanswered
		}
		return s, nil
	case "n", "right", "tab":
		s.warn("next", s.lc.Next())
		s.syncCursor()
		return s, nil
	case "p", "left", "shift+tab":
		s.warn("previous", s.lc.Previous())
		s.syncCursor()
		return s, nil
	case "s":
		s.warn("skip", s.lc.Skip())
		s.syncCursor()
		return s, nil
	case "x", "backspace":
		s.warn("clear", s.lc.Clear(s.position))
		return s, nil
	}

	mc := s.choice(s.lc.Meta(s.deps.Lang(), s.deps.Now()))
	var cmd tea.Cmd
	mc, cmd = mc.Update(msg)
	s.cursor = mc.Cursor
	return s, cmd
}

func (s *ExamScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	yes := false
	switch msg.String() {
	case "y", "Y":
		yes = true
	case "n", "N", "esc":
	default:
		return s, nil
	}

	kind := s.confirm
	s.confirm = confirmNone

	switch kind {
	case confirmSubmit:
		if yes {
			s.warn("submit", s.lc.ConfirmSubmit(context.Background(), s.deps.Now()))
			return s, nil
		}
		s.warn("decline submit", s.lc.DeclineSubmit())
		s.syncCursor()
	case confirmCancel:
		if yes {
			s.warn("cancel", s.lc.Cancel())
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ExamScreen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "r":
		next := examreview.New(s.deps, s.lc.Deck(), s.lc.Answers())
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

// syncCursor puts the cursor on the stored answer of the current question.
// warn logs a lifecycle call that failed.
func (s *ExamScreen) warn(action string, err error) {
	if err != nil {
		s.deps.Log().Warn("exam action failed", "action", action, "error", err)
	}
}

func (s *ExamScreen) syncCursor() {
	m := s.lc.Meta(s.deps.Lang(), s.deps.Now())
	s.position = m.Position
	s.cursor = max(m.Chosen, 0)
}

func (s *ExamScreen) choice(m ex.Meta) components.MultiChoice {
	mc := components.NewMultiChoice(m.Question, m.Options, components.NoChoice)
	mc.Cursor = s.cursor
	mc.Chosen = m.Chosen
	return mc
}

package home

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/bank"
	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	examscreen "github.com/abhisek/liuk/internal/screens/exam"
	"github.com/abhisek/liuk/internal/screens/history"
	"github.com/abhisek/liuk/internal/screens/practice"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
)

// Menu positions.
const (
	itemQuiz = iota
	itemFlash
	itemReview
	itemExam
	itemHistory
	itemQuit
)

var menuKeys = []string{"menu.quiz", "menu.flash", "menu.review", "menu.exam", "menu.history", "menu.quit"}

// poolLoadedMsg carries the result of the background question load.
type poolLoadedMsg struct {
	Pool *bank.Pool
	Err  error
}

// HomeScreen is the main menu. It owns the question load and the bank
// selection shared by every mode.
type HomeScreen struct {
	deps *deps.Deps
	menu components.Menu

	loading bool
	pool    *bank.Pool
	loadErr error

	banks []string
	bank  int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d *deps.Deps) *HomeScreen {
	h := &HomeScreen{deps: d, banks: []string{deck.AllBanks}}

	items := []components.MenuItem{
		{Action: func() tea.Cmd { return h.startPractice(deck.ModeQuiz) }},
		{Action: func() tea.Cmd { return h.startPractice(deck.ModeFlash) }},
		{Action: func() tea.Cmd { return h.startPractice(deck.ModeReview) }},
		{Action: h.startExam},
		{Action: func() tea.Cmd {
			return push(history.New(h.deps))
		}},
		{Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	h.relabel()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// load starts the pool fetch unless one is already running.
func (h *HomeScreen) load() tea.Cmd {
	if h.loading {
		return nil
	}
	h.loading = true
	h.loadErr = nil
	loader := h.deps.Loader
	return func() tea.Msg {
		pool, err := loader.Load(context.Background())
		return poolLoadedMsg{Pool: pool, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return h.deps.T("home.title")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.loadErr != nil {
		return []layout.KeyHint{
			{Key: "R", Description: h.deps.T("hint.retry")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: h.deps.T("hint.navigate")},
		{Key: "←→", Description: h.deps.T("hint.bank")},
		{Key: "Enter", Description: h.deps.T("hint.select")},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return h.handleLoaded(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if h.loadErr != nil {
				return h, h.load()
			}
			return h, nil
		case "left", "h":
			h.cycleBank(-1)
			return h, nil
		case "right", "l":
			h.cycleBank(1)
			return h, nil
		}
	}

	h.relabel()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, bank.ErrLoadInFlight) {
		// Another load owns the result; keep waiting.
		return h, nil
	}
	h.loading = false
	if msg.Err != nil {
		h.loadErr = msg.Err
		h.deps.Log().Error("question load failed", "error", msg.Err)
		return h, nil
	}
	h.pool = msg.Pool
	h.banks = append([]string{deck.AllBanks}, deck.Banks(h.pool.Questions())...)
	h.bank = 0
	return h, nil
}

func (h *HomeScreen) cycleBank(dir int) {
	n := len(h.banks)
	if n == 0 {
		return
	}
	h.bank = ((h.bank+dir)%n + n) % n
}

// Bank returns the selected bank filter.
func (h *HomeScreen) Bank() string {
	if h.bank < 0 || h.bank >= len(h.banks) {
		return deck.AllBanks
	}
	return h.banks[h.bank]
}

// ready reports whether a mode can start.
func (h *HomeScreen) ready() bool {
	return !h.loading && h.pool != nil
}

func (h *HomeScreen) startPractice(mode deck.Mode) tea.Cmd {
	if !h.ready() {
		return nil
	}
	return push(practice.New(h.deps, mode, h.pool.Questions(), h.Bank()))
}

func (h *HomeScreen) startExam() tea.Cmd {
	if !h.ready() {
		return nil
	}
	return push(examscreen.New(h.deps, h.pool.Questions(), h.Bank()))
}

// relabel refreshes menu text for the current language.
func (h *HomeScreen) relabel() {
	labels := make([]string, len(menuKeys))
	for i, k := range menuKeys {
		labels[i] = h.deps.T(k)
	}
	h.menu.SetLabels(labels)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

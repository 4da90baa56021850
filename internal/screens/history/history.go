package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/store"
	"github.com/abhisek/liuk/internal/ui/layout"
	"github.com/abhisek/liuk/internal/ui/theme"
)

// recentLimit caps how many attempts are listed.
const recentLimit = 50

type historyLoadedMsg struct {
	Attempts []store.ExamAttemptData
	Stats    store.AttemptStats
	Err      error
}

// HistoryScreen lists past exam attempts with the overall pass rate.
type HistoryScreen struct {
	deps     *deps.Deps
	attempts []store.ExamAttemptData
	stats    store.AttemptStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     d,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.deps.Attempts
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		attempts, err := repo.RecentAttempts(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return s.deps.T("history.title")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.deps.T("hint.select")},
		{Key: "↑↓", Description: s.deps.T("hint.navigate")},
		{Key: "Esc", Description: s.deps.T("hint.back")},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.deps.Log().Warn("load exam history", "error", msg.Err)
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.deps.Tf("history.error", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.deps.T("history.loading"))
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + s.deps.T("history.empty"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
			Render(s.deps.Tf("history.rate", s.stats.Attempts, s.stats.PassRate()*100))))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		dateStr := a.TakenAt.Local().Format("Jan 02, 2006 15:04")
		durationStr := layout.FormatClock(int(a.DurationSecs))

		verdict := s.deps.T("history.fail")
		verdictColor := theme.Error
		if a.Passed {
			verdict = s.deps.T("history.pass")
			verdictColor = theme.Success
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %2d/%-2d  ", prefix, dateStr, durationStr, a.Correct, a.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		row := style.Render(line) + lipgloss.NewStyle().Foreground(verdictColor).Bold(true).Render(verdict)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(s.details(a))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// details is the expanded line for one attempt.
func (s *HistoryScreen) details(a store.ExamAttemptData) string {
	bankName := a.Bank
	if bankName == "" || bankName == deck.AllBanks {
		bankName = s.deps.T("home.bank_all")
	}
	parts := []string{
		s.deps.Tf("home.bank", bankName),
		s.deps.Tf("exam.unanswered", a.Unanswered),
	}
	if a.Forced {
		parts = append(parts, s.deps.T("history.timed"))
	}
	return "    " + strings.Join(parts, "   ")
}

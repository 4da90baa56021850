package practice

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	snap := s.Snapshot()

	var b strings.Builder

	// Info line: counter on the left, running tally on the right.
	pos := 0
	if snap.Length > 0 {
		pos = min(snap.Position+1, snap.Length)
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.deps.Tf("practice.counter", pos, snap.Length))

	infoRight := ""
	if s.mode != deck.ModeFlash {
		infoRight = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(s.deps.Tf("practice.score", snap.Score, snap.WrongCount))
	}

	infoLine := infoLeft
	if rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", components.Fraction(pos, snap.Length), false, width-4).View())
	b.WriteString("\n")

	if s.tipKey != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(s.deps.T(s.tipKey)))
	}
	b.WriteString("\n\n")

	if snap.Empty() {
		if s.mode != deck.ModeReview {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Warning).
				Render(s.deps.T("home.no_questions")))
		}
		return b.String()
	}

	cardWidth := min(width-8, 76)
	mc := s.choice(snap)
	card := components.Card(lipgloss.NewStyle().Width(cardWidth-6).Render(mc.View()), cardWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if snap.Answered {
		if snap.Chosen == snap.CorrectIndex {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render(s.deps.T("practice.correct")))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render(s.deps.T("practice.wrong")))
		}
	}

	return b.String()
}

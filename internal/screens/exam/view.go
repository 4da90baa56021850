package exam

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/deck"
	ex "github.com/abhisek/liuk/internal/exam"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
	"github.com/abhisek/liuk/internal/ui/theme"
)

// lowTime turns the clock amber.
const lowTime = 5 * time.Minute

func (s *ExamScreen) View(width, height int) string {
	switch st := s.lc.State(); {
	case st == ex.StateRunning && s.confirm == confirmSubmit:
		return layout.RenderDialog(s.deps.Tf("exam.pending", s.unanswered),
			s.deps.T("hint.submit"), s.deps.T("hint.continue"), width, height)
	case st == ex.StateRunning && s.confirm == confirmCancel:
		return layout.RenderDialog(s.deps.T("exam.cancel_confirm"),
			s.deps.T("hint.yes"), s.deps.T("hint.no"), width, height)
	case st == ex.StateRunning:
		return s.renderRunning(width)
	case st.Submitted():
		return s.renderResult(width, height)
	default:
		return s.renderReady(width, height)
	}
}

func (s *ExamScreen) renderReady(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center)

	var lines []string
	lines = append(lines, center.Foreground(theme.Primary).Bold(true).Render(s.deps.T("exam.title")))
	lines = append(lines, "")
	lines = append(lines, center.Foreground(theme.Text).Render(
		s.deps.Tf("exam.ready", min(deck.ExamSize, s.candidates), int(ex.Duration/time.Minute), ex.PassMark)))
	lines = append(lines, center.Foreground(theme.TextDim).Italic(true).Render(s.deps.T("exam.ready_lang")))
	lines = append(lines, "")

	if s.noQuestion || s.candidates == 0 {
		lines = append(lines, center.Foreground(theme.Warning).Render(s.deps.T("exam.none")))
	} else {
		s.begin.Label = s.deps.T("exam.begin")
		lines = append(lines, center.Render(s.begin.View()))
	}

	card := components.Card(strings.Join(lines, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ExamScreen) renderRunning(width int) string {
	now := s.deps.Now()
	m := s.lc.Meta(s.deps.Lang(), now)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.deps.Tf("exam.counter", m.Position+1, m.Total, m.Answered))

	clockColor := theme.Text
	if m.Remaining < lowTime {
		clockColor = theme.Warning
	}
	infoRight := lipgloss.NewStyle().
		Foreground(clockColor).
		Bold(true).
		Render(s.deps.Tf("exam.time_left", layout.FormatClock(m.RemainingSeconds())))

	infoLine := infoLeft
	if rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(m.Remaining)/float64(ex.Duration), false, width-4)
	bar.Fill = theme.Primary
	if m.Remaining < lowTime {
		bar.Fill = theme.Warning
	}
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	cardWidth := min(width-8, 76)
	mc := s.choice(m)
	card := components.Card(lipgloss.NewStyle().Width(cardWidth-6).Render(mc.View()), cardWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderStrip(m)))
	return b.String()
}

// renderStrip shows one cell per question: filled when answered, the current
// one bracketed.
func (s *ExamScreen) renderStrip(m ex.Meta) string {
	answers := s.lc.Answers()
	var b strings.Builder
	for i, a := range answers {
		cell := "○"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if a != ex.NoAnswer {
			cell = "●"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if i == m.Position {
			style = style.Foreground(theme.Highlight).Bold(true)
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func (s *ExamScreen) renderResult(width, height int) string {
	res, _ := s.lc.Result()
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center)

	var lines []string
	if res.Forced {
		lines = append(lines, center.Foreground(theme.Warning).Render(s.deps.T("exam.times_up")), "")
	}

	verdict := center.Foreground(theme.Error).Bold(true).Render(s.deps.T("exam.failed"))
	if res.Passed {
		verdict = center.Foreground(theme.Success).Bold(true).Render(s.deps.T("exam.passed"))
	}
	lines = append(lines, verdict, "")
	lines = append(lines, center.Foreground(theme.Text).Bold(true).Render(s.deps.Tf("exam.score", res.Correct, res.Total)))

	bar := components.NewProgressBar("", components.Fraction(res.Correct, res.Total), true, cw-10)
	bar.Fill = theme.Error
	if res.Passed {
		bar.Fill = theme.Success
	}
	lines = append(lines, center.Render(bar.View()))

	details := s.deps.Tf("exam.pass_mark", ex.PassMark)
	if res.Unanswered > 0 {
		details = fmt.Sprintf("%s   %s", s.deps.Tf("exam.unanswered", res.Unanswered), details)
	}
	lines = append(lines, center.Foreground(theme.TextDim).Render(details))

	card := components.Card(strings.Join(lines, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

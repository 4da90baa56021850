// Package examreview is the read-only walk through a submitted exam.
package examreview

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/review"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/ui/layout"
	"github.com/abhisek/liuk/internal/ui/theme"
)

// ReviewScreen shows each exam question with the learner's answer and the
// correct one.
type ReviewScreen struct {
	deps    *deps.Deps
	nav     *review.Navigator
	input   components.TextInput
	jumping bool
	invalid bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.BackHandler = (*ReviewScreen)(nil)

// New creates a review of d with answers. Both are copied.
func New(dp *deps.Deps, d deck.Deck, answers []int) *ReviewScreen {
	s := &ReviewScreen{
		deps:  dp,
		nav:   review.New(d, answers),
		input: components.NewTextInput("", true, 3),
	}
	s.input.Blur()
	return s
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return s.deps.T("review.title")
}

// Navigator exposes the review cursor.
func (s *ReviewScreen) Navigator() *review.Navigator {
	return s.nav
}

// HandlesBack keeps Esc inside the screen while the jump prompt is open.
func (s *ReviewScreen) HandlesBack() bool {
	return s.jumping
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.jumping {
		return []layout.KeyHint{
			{Key: "Enter", Description: s.deps.T("hint.jump")},
			{Key: "Esc", Description: s.deps.T("hint.back")},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: s.deps.T("hint.navigate")},
		{Key: "G", Description: s.deps.T("hint.jump")},
		{Key: "Esc", Description: s.deps.T("hint.back")},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.jumping {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.jumping {
		return s.handleJumpKey(kmsg)
	}

	switch kmsg.String() {
	case "n", "right", "down", "j", "tab":
		s.nav.Next()
	case "p", "left", "up", "k", "shift+tab":
		s.nav.Previous()
	case "g":
		s.jumping = true
		s.invalid = false
		s.input.Reset()
		return s, s.input.Focus()
	}
	return s, nil
}

func (s *ReviewScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.closeJump()
		return s, nil
	case "enter":
		n, err := s.input.NumericValue()
		if err != nil || s.nav.JumpTo(n-1) != nil {
			s.invalid = true
			s.input.Submit(false)
			return s, nil
		}
		s.closeJump()
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ReviewScreen) closeJump() {
	s.jumping = false
	s.invalid = false
	s.input.Reset()
	s.input.Blur()
}

func (s *ReviewScreen) View(width, height int) string {
	lang := s.deps.Lang()
	item, ok := s.nav.Current(lang)
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n" + s.deps.T("review.empty"))
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.deps.Tf("practice.counter", item.Position+1, item.Total)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderStrip()))
	b.WriteString("\n\n")

	mc := components.NewMultiChoice(item.Question, item.Options, item.Correct)
	mc.Chosen = item.Chosen
	mc.Mode = components.ChoiceLocked

	cardWidth := min(width-8, 76)
	var body strings.Builder
	body.WriteString(mc.View())
	body.WriteString("\n")
	if item.Answered() {
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if item.IsCorrect() {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		body.WriteString(style.Render(s.deps.Tf("review.your_answer", optionText(item.Options, item.Chosen))))
	} else {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.deps.T("review.no_answer")))
	}
	body.WriteString("\n")
	body.WriteString(lipgloss.NewStyle().Foreground(theme.Success).
		Render(s.deps.Tf("review.correct_answer", optionText(item.Options, item.Correct))))

	card := components.Card(lipgloss.NewStyle().Width(cardWidth-6).Render(body.String()), cardWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if s.jumping {
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Render(s.deps.T("review.jump_prompt")+": ") + s.input.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
		if s.invalid {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(s.deps.Tf("review.jump_invalid", s.nav.Len())))
		}
	}

	return b.String()
}

// renderStrip draws one mark per question with the current one bracketed.
func (s *ReviewScreen) renderStrip() string {
	var b strings.Builder
	for i, m := range s.nav.Strip() {
		cell, style := "✗", lipgloss.NewStyle().Foreground(theme.Error)
		if m == review.MarkCorrect {
			cell, style = "✓", lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == s.nav.Position() {
			b.WriteString(style.Bold(true).Background(theme.BgCard).Render("[" + cell + "]"))
		} else {
			b.WriteString(style.Render(" " + cell + " "))
		}
	}
	return b.String()
}

func optionText(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return "-"
	}
	return components.OptionLabel(i) + ") " + options[i]
}

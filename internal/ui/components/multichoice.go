package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/ui/theme"
)

// ChoiceMode controls how a MultiChoice renders its options.
type ChoiceMode int

const (
	// ChoiceOpen accepts a pick; the chosen option is highlighted and may
	// change (exam answers).
	ChoiceOpen ChoiceMode = iota
	// ChoiceLocked shows the correct option in green and a wrong pick in red.
	ChoiceLocked
	// ChoiceRevealed prefixes the correct option without judging a pick.
	ChoiceRevealed
	// ChoiceStatic lists the options with no cursor or judgement.
	ChoiceStatic
)

// NoChoice is the Chosen value before anything is picked.
const NoChoice = -1

// ChoiceMadeMsg is emitted when an option is picked.
type ChoiceMadeMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector component.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       int
	Mode         ChoiceMode

	// RevealPrefix is prepended to the correct option in ChoiceRevealed.
	RevealPrefix string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       NoChoice,
		Mode:         ChoiceOpen,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and picks. Arrows move, Enter picks the
// cursor, and 1-9 or a-i pick directly. Anything but ChoiceOpen ignores
// input.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Mode != ChoiceOpen {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		return m.pick(m.Cursor)
	}

	if len(key) == 1 {
		switch c := key[0]; {
		case c >= '1' && c <= '9':
			return m.pick(int(c - '1'))
		case c >= 'a' && c <= 'i':
			return m.pick(int(c - 'a'))
		}
	}
	return m, nil
}

func (m MultiChoice) pick(i int) (MultiChoice, tea.Cmd) {
	if i < 0 || i >= len(m.Options) {
		return m, nil
	}
	m.Cursor = i
	m.Chosen = i
	return m, func() tea.Msg { return ChoiceMadeMsg{Index: i} }
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && m.Mode == ChoiceOpen {
			prefix = "▸ "
		}
		if m.Mode == ChoiceRevealed && i == m.CorrectIndex {
			opt = m.RevealPrefix + opt
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)
		s += m.styleFor(i).Render(line) + "\n"
	}

	return s
}

func (m MultiChoice) styleFor(i int) lipgloss.Style {
	switch m.Mode {
	case ChoiceLocked:
		switch i {
		case m.CorrectIndex:
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Chosen:
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	case ChoiceRevealed:
		if i == m.CorrectIndex {
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		}
		return lipgloss.NewStyle().Foreground(theme.Text)
	case ChoiceStatic:
		return lipgloss.NewStyle().Foreground(theme.Text)
	default:
		switch {
		case i == m.Chosen:
			return lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
		case i == m.Cursor:
			return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			return lipgloss.NewStyle().Foreground(theme.Text)
		}
	}
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen != NoChoice && m.Chosen == m.CorrectIndex
}

// OptionLabel returns the letter shown beside option i.
func OptionLabel(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}

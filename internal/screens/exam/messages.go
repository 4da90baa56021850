package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// tickInterval is the countdown resolution.
const tickInterval = time.Second

// tickMsg is one countdown step for the timer identified by Generation.
type tickMsg struct {
	Generation int
	At         time.Time
}

func tickCmd(generation int) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Generation: generation, At: t}
	})
}

// confirmKind names the dialog currently covering the exam.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmSubmit
	confirmCancel
)

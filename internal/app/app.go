package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/screens/home"
	"github.com/abhisek/liuk/internal/screens/welcome"
	"github.com/abhisek/liuk/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps        *deps.Deps
	router      *router.Router
	width       int
	height      int
	confirmQuit bool
}

// newAppModel creates a new AppModel starting at the welcome splash, or
// straight at the home screen when splash is false.
func newAppModel(d *deps.Deps, splash bool) AppModel {
	var first screen.Screen = home.New(d)
	if splash {
		first = welcome.New(d, func() screen.Screen { return home.New(d) })
	}
	return AppModel{
		deps:   d,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The guard may drop while the dialog is open, e.g. when the exam
	// times out.
	if m.confirmQuit && !m.guarded() {
		m.confirmQuit = false
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.confirmQuit {
			switch key {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N", "esc":
				m.confirmQuit = false
			}
			return m, nil
		}

		switch key {
		case "ctrl+c":
			if m.guarded() {
				m.confirmQuit = true
				return m, nil
			}
			return m, tea.Quit
		case "ctrl+l":
			if m.deps.Prefs != nil {
				m.deps.Prefs.Toggle()
			}
			return m, nil
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) guarded() bool {
	return m.deps.Prefs != nil && m.deps.Prefs.ExitGuarded()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	locked := m.deps.Prefs != nil && m.deps.Prefs.LanguageLocked()
	header := layout.RenderHeader(title, m.deps.Lang(), locked, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	var content string
	if m.confirmQuit {
		content = layout.RenderDialog(m.deps.T("app.quit_guard"),
			m.deps.T("hint.quit"), m.deps.T("hint.no"), m.width, contentHeight)
	} else {
		content = m.router.View(m.width, contentHeight)
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints combines the active screen's hints with the global keys.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if m.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: m.deps.T("hint.quit")},
			{Key: "N", Description: m.deps.T("hint.no")},
		}
	}

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, hp.KeyHints()...)
	} else if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: m.deps.T("hint.back")})
	}
	if m.deps.Prefs == nil || !m.deps.Prefs.LanguageLocked() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: m.deps.T("hint.lang")})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: m.deps.T("hint.quit")})
}

// Run starts the Bubble Tea program.
func Run(d *deps.Deps, splash bool) error {
	p := tea.NewProgram(newAppModel(d, splash))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

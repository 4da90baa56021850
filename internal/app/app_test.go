package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/bank"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screen"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/screens/home"
	"github.com/abhisek/liuk/internal/screens/welcome"
	"github.com/abhisek/liuk/internal/wrongset"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// stubScreen records the keys it receives.
type stubScreen struct {
	keys []string
	back bool
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "stub content" }
func (s *stubScreen) Title() string        { return "Stub" }
func (s *stubScreen) HandlesBack() bool    { return s.back }

func testModel(t *testing.T, splash bool) AppModel {
	t.Helper()
	ctx := context.Background()
	d := &deps.Deps{
		Loader: bank.NewLoader(""),
		Wrong:  wrongset.Open(ctx, wrongset.NewMemoryKV(), nil),
		Prefs:  prefs.Open(ctx, nil, nil, question.English),
	}
	return newAppModel(d, splash)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewAppModel_StartScreen(t *testing.T) {
	if _, ok := testModel(t, true).router.Active().(*welcome.WelcomeScreen); !ok {
		t.Error("splash should start at the welcome screen")
	}
	if _, ok := testModel(t, false).router.Active().(*home.HomeScreen); !ok {
		t.Error("no splash should start at home")
	}
}

func TestCtrlC_QuitsWhenUnguarded(t *testing.T) {
	m := testModel(t, false)
	_, cmd := update(t, m, ctrlKey('c'))
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestCtrlC_ConfirmsWhenGuarded(t *testing.T) {
	m := testModel(t, false)
	m.deps.Prefs.SetExitGuard(true)

	m, cmd := update(t, m, ctrlKey('c'))
	if cmd != nil || !m.confirmQuit {
		t.Fatal("guarded ctrl+c should ask first")
	}
	m, cmd = update(t, m, keyPress('n'))
	if cmd != nil || m.confirmQuit {
		t.Error("n should dismiss the quit dialog")
	}

	m, _ = update(t, m, ctrlKey('c'))
	_, cmd = update(t, m, keyPress('y'))
	if !isQuit(cmd) {
		t.Error("y should quit")
	}
}

func TestQuitDialog_ClosesWhenGuardDrops(t *testing.T) {
	m := testModel(t, false)
	m.deps.Prefs.SetExitGuard(true)
	m, _ = update(t, m, ctrlKey('c'))

	m.deps.Prefs.SetExitGuard(false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.confirmQuit {
		t.Error("dialog should close once nothing needs guarding")
	}
}

func TestCtrlL_TogglesLanguage(t *testing.T) {
	m := testModel(t, false)
	m, _ = update(t, m, ctrlKey('l'))
	if m.deps.Lang() != question.Chinese {
		t.Error("ctrl+l should switch to Chinese")
	}

	m.deps.Prefs.SetLanguageLocked(true)
	m, _ = update(t, m, ctrlKey('l'))
	if m.deps.Lang() != question.Chinese {
		t.Error("locked language must not change")
	}
}

func TestEsc_PopsAboveRoot(t *testing.T) {
	m := testModel(t, false)
	if _, cmd := update(t, m, specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("Esc at the root does nothing")
	}

	stub := &stubScreen{}
	m.router.Push(stub)
	_, cmd := update(t, m, specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("Esc above the root should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(stub.keys) != 0 {
		t.Error("screen should not see Esc it did not claim")
	}
}

func TestEsc_DelegatedToBackHandler(t *testing.T) {
	m := testModel(t, false)
	stub := &stubScreen{back: true}
	m.router.Push(stub)

	_, cmd := update(t, m, specialKey(tea.KeyEscape))
	if cmd != nil {
		t.Error("claimed Esc must not pop")
	}
	if len(stub.keys) != 1 || stub.keys[0] != "esc" {
		t.Errorf("screen keys = %v, want [esc]", stub.keys)
	}
}

func TestView_HeaderAndFooter(t *testing.T) {
	m := testModel(t, false)
	stub := &stubScreen{}
	m.router.Push(stub)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	content := m.render()
	for _, want := range []string{"Stub", "stub content", "Ctrl+L"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.deps.Prefs.SetLanguageLocked(true)
	if strings.Contains(m.render(), "Ctrl+L") {
		t.Error("language hint should hide while locked")
	}
}

func TestView_QuitDialog(t *testing.T) {
	m := testModel(t, false)
	m.deps.Prefs.SetExitGuard(true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, ctrlKey('c'))

	if !strings.Contains(m.render(), "An exam is running") {
		t.Error("view should show the quit dialog")
	}
}

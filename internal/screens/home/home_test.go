package home

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/liuk/internal/bank"
	"github.com/abhisek/liuk/internal/deck"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screens/deps"
	examscreen "github.com/abhisek/liuk/internal/screens/exam"
	"github.com/abhisek/liuk/internal/screens/history"
	"github.com/abhisek/liuk/internal/screens/practice"
	"github.com/abhisek/liuk/internal/wrongset"
)

const testCSV = "id,topic,question_en,question_zh,options_en,options_zh,answer_index\n" +
	"1,History,When was the Magna Carta sealed?,,1215 | 1066 | 1688,,0\n" +
	"2,Government,Where does Parliament sit?,,Westminster | Windsor,,0\n"

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testHome(t *testing.T, source string) *HomeScreen {
	t.Helper()
	ctx := context.Background()
	d := &deps.Deps{
		Loader: bank.NewLoader(source),
		Wrong:  wrongset.Open(ctx, wrongset.NewMemoryKV(), nil),
		Prefs:  prefs.Open(ctx, nil, nil, question.English),
	}
	return New(d)
}

func writeBank(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(p, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func loaded(t *testing.T) *HomeScreen {
	t.Helper()
	h := testHome(t, writeBank(t))
	h.Update(h.Init()())
	if !h.ready() {
		t.Fatal("home should be ready after the load")
	}
	return h
}

func pushed(t *testing.T, cmd tea.Cmd) router.PushScreenMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return msg
}

func TestHome_Title(t *testing.T) {
	if got := testHome(t, "").Title(); got != "Home" {
		t.Errorf("title = %q", got)
	}
}

func TestHome_LoadingBlocksModes(t *testing.T) {
	h := testHome(t, writeBank(t))
	_ = h.Init()

	if !strings.Contains(h.View(120, 40), "Loading questions...") {
		t.Error("view should show loading")
	}
	if _, cmd := h.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("modes must not start before the pool loads")
	}
}

func TestHome_LoadedShowsStats(t *testing.T) {
	h := loaded(t)
	view := h.View(120, 40)
	if !strings.Contains(view, "2 questions") {
		t.Error("view should count the loaded questions")
	}
	if !strings.Contains(view, "QUIZ") || !strings.Contains(view, "MOCK EXAM") {
		t.Error("menu labels missing")
	}
}

func TestHome_StartQuiz(t *testing.T) {
	h := loaded(t)
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msg := pushed(t, cmd)
	if _, ok := msg.Screen.(*practice.PracticeScreen); !ok {
		t.Errorf("expected practice screen, got %T", msg.Screen)
	}
}

func TestHome_StartExam(t *testing.T) {
	h := loaded(t)
	for range itemExam {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msg := pushed(t, cmd)
	if _, ok := msg.Screen.(*examscreen.ExamScreen); !ok {
		t.Errorf("expected exam screen, got %T", msg.Screen)
	}
}

func TestHome_History(t *testing.T) {
	h := loaded(t)
	h.Update(specialKey(tea.KeyUp))
	h.Update(specialKey(tea.KeyUp))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msg := pushed(t, cmd)
	if _, ok := msg.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", msg.Screen)
	}
}

func TestHome_BankCycle(t *testing.T) {
	h := loaded(t)
	if h.Bank() != deck.AllBanks {
		t.Fatalf("initial bank = %q", h.Bank())
	}
	h.Update(specialKey(tea.KeyRight))
	if h.Bank() != "History" {
		t.Errorf("bank after right = %q", h.Bank())
	}
	h.Update(specialKey(tea.KeyLeft))
	h.Update(specialKey(tea.KeyLeft))
	if h.Bank() != "Government" {
		t.Errorf("left from all should wrap to the last bank, got %q", h.Bank())
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	ps := pushed(t, cmd).Screen.(*practice.PracticeScreen)
	if snap := ps.Snapshot(); snap.Length != 1 || snap.Topic != "Government" {
		t.Errorf("practice ignored the bank: %d questions, topic %q", snap.Length, snap.Topic)
	}
}

func TestHome_LoadErrorAndRetry(t *testing.T) {
	h := testHome(t, filepath.Join(t.TempDir(), "missing.csv"))
	h.Update(h.Init()())

	if !strings.Contains(h.View(120, 40), "Failed to load") {
		t.Error("view should show the load error")
	}
	if len(h.KeyHints()) != 1 {
		t.Error("error state should only offer retry")
	}
	if _, cmd := h.Update(keyPress('r')); cmd == nil {
		t.Error("r should retry the load")
	}
}

func TestHome_EmptyBank(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(p, []byte("id,topic,question_en,question_zh,options_en,options_zh,answer_index\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := testHome(t, p)
	h.Update(h.Init()())
	if !strings.Contains(h.View(120, 40), "No questions available") {
		t.Error("empty pool should say no questions")
	}
}

func TestHome_RelabelsOnLanguageSwitch(t *testing.T) {
	h := loaded(t)
	h.deps.Prefs.SetLanguage(question.Chinese)
	if !strings.Contains(h.View(120, 40), "模拟考试") {
		t.Error("menu should follow the language")
	}
}

package exam

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/liuk/internal/exam"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/router"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/screens/examreview"
	"github.com/abhisek/liuk/internal/store"
	"github.com/abhisek/liuk/internal/ui/components"
	"github.com/abhisek/liuk/internal/wrongset"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// fakeHistory implements store.AttemptRepo in memory.
type fakeHistory struct {
	saved []store.ExamAttemptData
}

func (f *fakeHistory) SaveAttempt(_ context.Context, data store.ExamAttemptData) error {
	f.saved = append(f.saved, data)
	return nil
}

func (f *fakeHistory) RecentAttempts(context.Context, int) ([]store.ExamAttemptData, error) {
	return f.saved, nil
}

func (f *fakeHistory) Stats(context.Context) (store.AttemptStats, error) {
	return store.AttemptStats{Attempts: len(f.saved)}, nil
}

func testPool(n int, topic string) []question.Question {
	pool := make([]question.Question, n)
	for i := range pool {
		pool[i] = question.Question{
			ID:           i + 1,
			Topic:        topic,
			Text:         question.Text{EN: fmt.Sprintf("Question %d?", i+1)},
			Options:      question.Options{EN: []string{"right", "wrong", "also wrong"}},
			CorrectIndex: 0,
		}
	}
	return pool
}

type fixture struct {
	screen  *ExamScreen
	deps    *deps.Deps
	history *fakeHistory
	now     time.Time
}

func newFixture(t *testing.T, pool []question.Question, bank string) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		history: &fakeHistory{},
		now:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.deps = &deps.Deps{
		Wrong:    wrongset.Open(ctx, wrongset.NewMemoryKV(), nil),
		Prefs:    prefs.Open(ctx, nil, nil, question.English),
		Attempts: f.history,
		Rand:     rand.New(rand.NewPCG(7, 7)),
		Clock:    func() time.Time { return f.now },
	}
	f.screen = New(f.deps, pool, bank)
	return f
}

func (f *fixture) begin(t *testing.T) {
	t.Helper()
	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("begin should arm the countdown")
	}
	if f.screen.Lifecycle().State() != ex.StateRunning {
		t.Fatalf("state = %v, want running", f.screen.Lifecycle().State())
	}
}

// answer picks option i on the current question through the key path.
func (f *fixture) answer(t *testing.T, i int) {
	t.Helper()
	_, cmd := f.screen.Update(keyPress(rune('1' + i)))
	if cmd == nil {
		t.Fatal("pick should emit a choice")
	}
	f.screen.Update(cmd())
}

func TestExam_ReadyView(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	if f.screen.Title() != "Mock Exam" {
		t.Errorf("title = %q", f.screen.Title())
	}
	view := f.screen.View(120, 40)
	if !strings.Contains(view, "24 questions") {
		t.Error("ready view should announce the exam size")
	}
	if f.screen.HandlesBack() {
		t.Error("ready exam should leave Esc to the router")
	}
}

func TestExam_Begin_LocksLanguage(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)

	if !f.deps.Prefs.LanguageLocked() {
		t.Error("language should be locked while running")
	}
	if !f.deps.Prefs.ExitGuarded() {
		t.Error("exit guard should be on while running")
	}
	if !f.screen.HandlesBack() {
		t.Error("running exam should handle Esc itself")
	}
	if got := len(f.screen.Lifecycle().Deck()); got != 24 {
		t.Errorf("deck size = %d, want 24", got)
	}
}

func TestExam_Begin_SmallBank(t *testing.T) {
	f := newFixture(t, testPool(5, "History"), "all")
	f.begin(t)
	if got := len(f.screen.Lifecycle().Deck()); got != 5 {
		t.Errorf("deck size = %d, want all 5", got)
	}
}

func TestExam_Begin_NoQuestions(t *testing.T) {
	f := newFixture(t, testPool(5, "History"), "Geography")
	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("no countdown without questions")
	}
	if f.screen.Lifecycle().State() != ex.StateReady {
		t.Errorf("state = %v, want ready", f.screen.Lifecycle().State())
	}
	if !strings.Contains(f.screen.View(120, 40), "Not enough questions") {
		t.Error("view should explain the empty bank")
	}
}

func TestExam_Tick_StaleGenerationIgnored(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	gen := f.screen.Lifecycle().Generation()

	f.now = f.now.Add(ex.Duration + time.Second)
	_, cmd := f.screen.Update(tickMsg{Generation: gen - 1, At: f.now})
	if cmd != nil {
		t.Error("stale tick must not re-arm")
	}
	if f.screen.Lifecycle().State() != ex.StateRunning {
		t.Error("stale tick must not submit")
	}
}

func TestExam_Tick_RearmsBeforeDeadline(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)

	f.now = f.now.Add(time.Minute)
	_, cmd := f.screen.Update(tickMsg{Generation: f.screen.Lifecycle().Generation(), At: f.now})
	if cmd == nil {
		t.Error("tick before the deadline should schedule the next one")
	}
}

func TestExam_Tick_ForcesSubmitAtDeadline(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.answer(t, 0)
	f.screen.Update(keyPress('f'))

	gen := f.screen.Lifecycle().Generation()
	f.now = f.now.Add(ex.Duration)
	_, cmd := f.screen.Update(tickMsg{Generation: gen, At: f.now})
	if cmd != nil {
		t.Error("timer should stop after forced submission")
	}

	lc := f.screen.Lifecycle()
	if lc.State() != ex.StateSubmittedForced {
		t.Fatalf("state = %v, want submitted-forced", lc.State())
	}
	if f.screen.confirm != confirmNone {
		t.Error("forced submission should close the pending dialog")
	}
	res, _ := lc.Result()
	if res.Unanswered != 23 || !res.Forced {
		t.Errorf("result = %+v", res)
	}
	if len(f.history.saved) != 1 || !f.history.saved[0].Forced {
		t.Errorf("history = %+v", f.history.saved)
	}
	if f.deps.Prefs.LanguageLocked() || f.deps.Prefs.ExitGuarded() {
		t.Error("submission should release the language lock and exit guard")
	}
	if !strings.Contains(f.screen.View(120, 40), "Time is up") {
		t.Error("result view should say the exam timed out")
	}

	// A second tick for the same generation does nothing.
	f.screen.Update(tickMsg{Generation: gen, At: f.now.Add(time.Second)})
	if len(f.history.saved) != 1 {
		t.Error("exam submitted twice")
	}
}

func TestExam_Submit_PendingThenDecline(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.answer(t, 0)

	f.screen.Update(keyPress('f'))
	if f.screen.confirm != confirmSubmit {
		t.Fatal("unanswered questions should open the submit dialog")
	}
	if !strings.Contains(f.screen.View(120, 40), "23 questions are unanswered") {
		t.Error("dialog should count the unanswered questions")
	}

	f.screen.Update(keyPress('n'))
	lc := f.screen.Lifecycle()
	if lc.State() != ex.StateRunning {
		t.Fatalf("decline should keep the exam running, got %v", lc.State())
	}
	if got := lc.Meta(question.English, f.now).Position; got != 1 {
		t.Errorf("decline should move to the first unanswered question, at %d", got)
	}
}

func TestExam_Submit_PendingThenConfirm(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)

	f.screen.Update(keyPress('f'))
	f.screen.Update(keyPress('y'))

	lc := f.screen.Lifecycle()
	if lc.State() != ex.StateSubmitted {
		t.Fatalf("state = %v, want submitted", lc.State())
	}
	res, _ := lc.Result()
	if res.Passed || res.Unanswered != 24 {
		t.Errorf("result = %+v", res)
	}
	if f.deps.Wrong.Len() != 24 {
		t.Errorf("unanswered questions should be recorded wrong, got %d", f.deps.Wrong.Len())
	}
}

func TestExam_AllCorrect_Passes(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)

	d := f.screen.Lifecycle().Deck()
	for i := range d {
		f.answer(t, d[i].CorrectIndex)
		f.screen.Update(keyPress('n'))
	}
	f.screen.Update(keyPress('f'))

	lc := f.screen.Lifecycle()
	if lc.State() != ex.StateSubmitted {
		t.Fatalf("fully answered exam should submit without a dialog, state %v", lc.State())
	}
	res, _ := lc.Result()
	if !res.Passed || res.Correct != 24 {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(f.screen.View(120, 40), "PASSED") {
		t.Error("result view should show the pass")
	}
}

func TestExam_ClearRemovesAnswer(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.answer(t, 1)
	f.screen.Update(keyPress('x'))

	if got := f.screen.Lifecycle().Answers()[0]; got != ex.NoAnswer {
		t.Errorf("answer after clear = %d", got)
	}
}

func TestExam_ChangeAnswer(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.answer(t, 1)
	f.screen.Update(components.ChoiceMadeMsg{Index: 2})

	if got := f.screen.Lifecycle().Answers()[0]; got != 2 {
		t.Errorf("answer = %d, want the later pick", got)
	}
}

func TestExam_Navigation_Wraps(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.screen.Update(keyPress('p'))
	if got := f.screen.Lifecycle().Meta(question.English, f.now).Position; got != 23 {
		t.Errorf("previous from first = %d, want 23", got)
	}
	f.screen.Update(keyPress('n'))
	if got := f.screen.Lifecycle().Meta(question.English, f.now).Position; got != 0 {
		t.Errorf("next from last = %d, want 0", got)
	}
}

func TestExam_Cancel_RestoresLanguage(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.deps.Prefs.SetLanguage(question.Chinese)

	f.screen.Update(specialKey(tea.KeyEscape))
	if f.screen.confirm != confirmCancel {
		t.Fatal("Esc should ask before cancelling")
	}
	_, cmd := f.screen.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("confirmed cancel should leave the screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if f.screen.Lifecycle().State() != ex.StateCancelled {
		t.Errorf("state = %v, want cancelled", f.screen.Lifecycle().State())
	}
	if f.deps.Prefs.Language() != question.English {
		t.Error("cancel should restore the language from before the exam")
	}
	if len(f.history.saved) != 0 {
		t.Error("cancelled exam must not be recorded")
	}
}

func TestExam_Cancel_Declined(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.screen.Update(specialKey(tea.KeyEscape))
	f.screen.Update(specialKey(tea.KeyEscape))

	if f.screen.confirm != confirmNone || f.screen.Lifecycle().State() != ex.StateRunning {
		t.Error("Esc on the dialog should dismiss it and keep the exam")
	}
}

func TestExam_ResultOpensReview(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	f.begin(t)
	f.screen.Update(keyPress('f'))
	f.screen.Update(keyPress('y'))

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on the result should open the review")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	rv, ok := msg.Screen.(*examreview.ReviewScreen)
	if !ok {
		t.Fatalf("expected review screen, got %T", msg.Screen)
	}
	if rv.Navigator().Len() != 24 {
		t.Errorf("review length = %d", rv.Navigator().Len())
	}
}

func TestExam_KeyHints(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	if len(f.screen.KeyHints()) != 2 {
		t.Error("ready hints should be begin and back")
	}
	f.begin(t)
	if len(f.screen.KeyHints()) != 6 {
		t.Error("running hints should cover select, navigate, skip, clear, submit and cancel")
	}
}

func TestExam_ConfirmFailureIsLogged(t *testing.T) {
	f := newFixture(t, testPool(30, "History"), "all")
	var logs bytes.Buffer
	f.deps.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	f.begin(t)

	f.screen.Update(specialKey(tea.KeyEscape))
	if err := f.screen.Lifecycle().Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, cmd := f.screen.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("confirmed cancel should still leave the screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	out := logs.String()
	if !strings.Contains(out, "exam action failed") || !strings.Contains(out, "action=cancel") {
		t.Errorf("cancel failure not logged: %q", out)
	}
	if !strings.Contains(out, ex.ErrNotRunning.Error()) {
		t.Errorf("log should carry the error: %q", out)
	}
}

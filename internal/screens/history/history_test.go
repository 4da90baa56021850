package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/screens/deps"
	"github.com/abhisek/liuk/internal/store"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type fakeRepo struct {
	attempts []store.ExamAttemptData
	err      error
	limit    int
}

func (f *fakeRepo) SaveAttempt(context.Context, store.ExamAttemptData) error { return nil }

func (f *fakeRepo) RecentAttempts(_ context.Context, limit int) ([]store.ExamAttemptData, error) {
	f.limit = limit
	return f.attempts, f.err
}

func (f *fakeRepo) Stats(context.Context) (store.AttemptStats, error) {
	s := store.AttemptStats{Attempts: len(f.attempts)}
	for _, a := range f.attempts {
		if a.Passed {
			s.Passed++
		}
	}
	return s, f.err
}

func testDeps(repo store.AttemptRepo) *deps.Deps {
	return &deps.Deps{
		Prefs:    prefs.Open(context.Background(), nil, nil, question.English),
		Attempts: repo,
	}
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestHistory_Loading(t *testing.T) {
	s := New(testDeps(&fakeRepo{}))
	if !strings.Contains(s.View(80, 24), "Loading history...") {
		t.Error("view should show loading before the data arrives")
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(testDeps(&fakeRepo{}))
	load(s)
	if !strings.Contains(s.View(80, 24), "No exams taken yet.") {
		t.Error("empty history should say so")
	}
}

func TestHistory_NilRepo(t *testing.T) {
	s := New(testDeps(nil))
	load(s)
	if !strings.Contains(s.View(80, 24), "No exams taken yet.") {
		t.Error("missing repo should behave as an empty history")
	}
}

func TestHistory_Error(t *testing.T) {
	s := New(testDeps(&fakeRepo{err: errors.New("disk gone")}))
	load(s)
	if !strings.Contains(s.View(80, 24), "disk gone") {
		t.Error("load error should be shown")
	}
}

func TestHistory_ListAndExpand(t *testing.T) {
	repo := &fakeRepo{attempts: []store.ExamAttemptData{
		{ID: uuid.New(), TakenAt: time.Now(), Bank: "History", Total: 24, Correct: 20, Passed: true, DurationSecs: 1200},
		{ID: uuid.New(), TakenAt: time.Now().Add(-time.Hour), Bank: "all", Total: 24, Correct: 10, Unanswered: 6, Forced: true, DurationSecs: 2700},
	}}
	s := New(testDeps(repo))
	load(s)

	if repo.limit != recentLimit {
		t.Errorf("limit = %d, want %d", repo.limit, recentLimit)
	}

	view := s.View(100, 40)
	for _, want := range []string{"2 attempts   50% passed", "20/24", "pass", "fail", "20:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "timed out") {
		t.Error("details should be hidden until expanded")
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	view = s.View(100, 40)
	for _, want := range []string{"timed out", "6 unanswered", "all topics"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}
}

func TestHistory_Title(t *testing.T) {
	if got := New(testDeps(nil)).Title(); got != "Exam History" {
		t.Errorf("title = %q", got)
	}
}

// Package deps bundles the collaborators every screen needs so screens can
// construct each other without the app threading arguments through.
package deps

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/liuk/internal/bank"
	"github.com/abhisek/liuk/internal/locale"
	"github.com/abhisek/liuk/internal/prefs"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/store"
	"github.com/abhisek/liuk/internal/wrongset"
)

// Deps is shared by all screens of one program run.
type Deps struct {
	Loader *bank.Loader
	Wrong  *wrongset.Store
	Prefs  *prefs.Prefs

	// Attempts receives exam history. Nil disables history.
	Attempts store.AttemptRepo

	Logger *slog.Logger

	// Rand drives deck shuffles. Nil uses a randomly seeded source per deck.
	Rand *rand.Rand

	// Clock returns the current time. Nil uses time.Now.
	Clock func() time.Time
}

// Lang returns the current display language.
func (d *Deps) Lang() question.Lang {
	if d.Prefs == nil {
		return prefs.DefaultLang
	}
	return d.Prefs.Language()
}

// T looks up an interface string in the current language.
func (d *Deps) T(key string) string {
	return locale.T(d.Lang(), key)
}

// Tf formats an interface string in the current language.
func (d *Deps) Tf(key string, args ...any) string {
	return locale.Tf(d.Lang(), key, args...)
}

// Now returns the current time from Clock.
func (d *Deps) Now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// Log returns the logger, never nil.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

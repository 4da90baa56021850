// Package prefs holds the per-user interface state shared by every screen:
// the display language and the locks a running exam places on it.
package prefs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/wrongset"
)

// LangKey is the storage key of the language preference.
const LangKey = "liuk_lang_v1"

// DefaultLang is used when no preference has been saved.
const DefaultLang = question.Chinese

// Prefs implements exam.Environment.
type Prefs struct {
	kv     wrongset.KV
	logger *slog.Logger

	mu     sync.Mutex
	lang   question.Lang
	locked bool
	guard  bool
}

// Open loads the saved language. A non-empty override wins and is not
// persisted. kv may be nil for a session that saves nothing.
func Open(ctx context.Context, kv wrongset.KV, logger *slog.Logger, override question.Lang) *Prefs {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Prefs{kv: kv, logger: logger, lang: DefaultLang}

	if override != "" {
		p.lang = question.ParseLang(string(override))
		return p
	}
	if kv == nil {
		return p
	}
	raw, ok, err := kv.Get(ctx, LangKey)
	if err != nil {
		logger.Warn("load language preference", "error", err)
		return p
	}
	if ok && raw != "" {
		p.lang = question.ParseLang(raw)
	}
	return p
}

// Language returns the display language.
func (p *Prefs) Language() question.Lang {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lang
}

// SetLanguage changes and persists the display language. It is not
// affected by the lock.
func (p *Prefs) SetLanguage(lang question.Lang) {
	p.mu.Lock()
	p.lang = lang
	p.mu.Unlock()
	p.persist(lang)
}

// Toggle switches language unless locked. Returns whether it switched.
func (p *Prefs) Toggle() bool {
	p.mu.Lock()
	if p.locked {
		p.mu.Unlock()
		return false
	}
	p.lang = p.lang.Toggle()
	lang := p.lang
	p.mu.Unlock()

	p.persist(lang)
	return true
}

// SetLanguageLocked enables or disables Toggle.
func (p *Prefs) SetLanguageLocked(locked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked = locked
}

// LanguageLocked reports whether Toggle is disabled.
func (p *Prefs) LanguageLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// SetExitGuard installs or removes the quit confirmation.
func (p *Prefs) SetExitGuard(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.guard = on
}

// ExitGuarded reports whether quitting needs confirmation.
func (p *Prefs) ExitGuarded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.guard
}

func (p *Prefs) persist(lang question.Lang) {
	if p.kv == nil {
		return
	}
	if err := p.kv.Set(context.Background(), LangKey, string(lang)); err != nil {
		p.logger.Warn("save language preference", "error", err)
	}
}

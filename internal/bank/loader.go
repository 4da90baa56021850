package bank

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/liuk/internal/question"
)

var (
	ErrNoQuestions  = errors.New("no questions available")
	ErrTooLarge     = errors.New("question file too large")
	ErrNotTabular   = errors.New("question file looks like markup, not tabular data")
	ErrLoadInFlight = errors.New("question load already in progress")
)

// Payload limits applied before parsing.
const (
	MaxBytes = 2 << 20
	MaxLines = 10000
)

// EmbeddedSource names the built-in question set.
const EmbeddedSource = "embedded:questions.csv"

//go:embed questions.csv
var embeddedCSV string

// Pool is the immutable set of loaded questions.
type Pool struct {
	source    string
	questions []question.Question
	skipped   []SkippedRow
}

// Questions returns the pool in file order. The slice is a copy; the
// questions inside share option storage with the pool and must be cloned
// before mutation.
func (p *Pool) Questions() []question.Question {
	if p == nil {
		return nil
	}
	return slices.Clone(p.questions)
}

// Len returns the number of questions.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.questions)
}

// Skipped returns the rows that were dropped during load.
func (p *Pool) Skipped() []SkippedRow {
	if p == nil {
		return nil
	}
	return slices.Clone(p.skipped)
}

// Source describes where the pool came from.
func (p *Pool) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Require returns ErrNoQuestions when the pool is empty.
func (p *Pool) Require() error {
	if p.Len() == 0 {
		return ErrNoQuestions
	}
	return nil
}

// FromText applies the payload guards, parses raw and validates each row.
// Rows with an out-of-range answer index or a repeated id are dropped and
// reported.
func FromText(raw, source string) (*Pool, error) {
	if len(raw) > MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(raw), MaxBytes)
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "<") {
		return nil, ErrNotTabular
	}
	if n := CountLines(raw); n > MaxLines {
		return nil, fmt.Errorf("%w: %d lines exceeds %d", ErrTooLarge, n, MaxLines)
	}

	res := Parse(raw)
	pool := &Pool{source: source, skipped: res.Skipped}
	seen := make(map[int]bool, len(res.Questions))
	for i, q := range res.Questions {
		line := res.Lines[i]
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options.EN) {
			pool.skipped = append(pool.skipped, SkippedRow{
				Line:   line,
				Reason: fmt.Sprintf("question %d: answer index %d out of range", q.ID, q.CorrectIndex),
			})
			continue
		}
		if seen[q.ID] {
			pool.skipped = append(pool.skipped, SkippedRow{
				Line:   line,
				Reason: fmt.Sprintf("question %d: duplicate id", q.ID),
			})
			continue
		}
		seen[q.ID] = true
		pool.questions = append(pool.questions, q)
	}
	slices.SortStableFunc(pool.skipped, func(a, b SkippedRow) int { return a.Line - b.Line })
	return pool, nil
}

// CountLines counts lines the way Parse splits them, so CR, LF and CRLF
// endings all count once.
func CountLines(raw string) int {
	return len(lineBreak.FindAllStringIndex(raw, -1)) + 1
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithTimeout bounds a single fetch.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.timeout = d }
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// Loader fetches the question file once and caches the pool for the process
// lifetime. Source is a file path, an http(s) URL, or empty for the embedded
// set.
type Loader struct {
	source  string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	loading bool
	pool    *Pool
}

// NewLoader creates a Loader for source.
func NewLoader(source string, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:  source,
		client:  http.DefaultClient,
		timeout: 15 * time.Second,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cached returns the pool if a load has completed, nil otherwise.
func (l *Loader) Cached() *Pool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool
}

// Load returns the cached pool or fetches it. A call made while another load
// is still running returns ErrLoadInFlight without starting a second fetch.
func (l *Loader) Load(ctx context.Context) (*Pool, error) {
	l.mu.Lock()
	if l.pool != nil {
		p := l.pool
		l.mu.Unlock()
		return p, nil
	}
	if l.loading {
		l.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	l.loading = true
	l.mu.Unlock()

	pool, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return nil, err
	}
	l.pool = pool
	for _, s := range pool.skipped {
		l.logger.Warn("question row skipped", "source", pool.source, "line", s.Line, "reason", s.Reason)
	}
	l.logger.Info("question bank loaded", "source", pool.source, "questions", pool.Len(), "skipped", len(pool.skipped))
	return pool, nil
}

func (l *Loader) fetch(ctx context.Context) (*Pool, error) {
	switch {
	case l.source == "":
		return FromText(embeddedCSV, EmbeddedSource)
	case strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://"):
		raw, err := l.download(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", l.source, err)
		}
		return FromText(raw, l.source)
	default:
		f, err := os.Open(l.source)
		if err != nil {
			return nil, fmt.Errorf("open question file: %w", err)
		}
		defer f.Close()
		raw, err := readLimited(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", l.source, err)
		}
		return FromText(raw, l.source)
	}
}

func (l *Loader) download(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return readLimited(resp.Body)
}

// readLimited reads at most MaxBytes+1 so oversize payloads are detected
// without buffering them whole.
func readLimited(r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, MaxBytes+1)); err != nil {
		return "", err
	}
	if buf.Len() > MaxBytes {
		return "", ErrTooLarge
	}
	return buf.String(), nil
}

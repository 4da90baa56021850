package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/liuk/internal/question"
)

// Environment variable names.
const (
	EnvDB           = "LIUK_DB"
	EnvQuestions    = "LIUK_QUESTIONS"
	EnvLang         = "LIUK_LANG"
	EnvLog          = "LIUK_LOG"
	EnvFetchTimeout = "LIUK_FETCH_TIMEOUT"
)

// DefaultFetchTimeout bounds a remote question download.
const DefaultFetchTimeout = 15 * time.Second

type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string

	// Questions is a file path or http(s) URL. Empty means the embedded bank.
	Questions string

	// Lang overrides the saved language preference when set.
	Lang question.Lang

	// LogPath receives JSON log lines. Empty disables logging.
	LogPath string

	FetchTimeout time.Duration
}

// Load reads an optional .env file (or the given files) and then the
// environment. Variables already set in the environment win over the file.
func Load(files ...string) *Config {
	// Missing .env files are fine.
	_ = godotenv.Load(files...)

	cfg := &Config{
		DBPath:       os.Getenv(EnvDB),
		Questions:    os.Getenv(EnvQuestions),
		LogPath:      os.Getenv(EnvLog),
		FetchTimeout: getEnvAsDurationOrDefault(EnvFetchTimeout, DefaultFetchTimeout),
	}
	if v := os.Getenv(EnvLang); v != "" {
		cfg.Lang = question.ParseLang(v)
	}
	return cfg
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/config"
	"github.com/abhisek/liuk/internal/question"
	"github.com/abhisek/liuk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "liuk",
	Short: "Life in the UK test practice",
	Long:  "liuk: bilingual (English / 中文) Life in the UK practice in the terminal. Quiz, flashcards, review of wrong answers and a timed mock exam.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LIUK_DB env var)")
	pf.String("questions", "", "Question bank file or http(s) URL (overrides LIUK_QUESTIONS)")
	pf.String("lang", "", "Display language for this run: en or zh (overrides LIUK_LANG)")
	pf.String("log", "", "Write JSON logs to this file (overrides LIUK_LOG)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies any flags.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	flags := cmd.Flags()
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("questions"); v != "" {
		cfg.Questions = v
	}
	if v, _ := flags.GetString("lang"); v != "" {
		cfg.Lang = question.ParseLang(v)
	}
	if v, _ := flags.GetString("log"); v != "" {
		cfg.LogPath = v
	}
	return cfg
}

// resolveDBPath returns the database path using --db or LIUK_DB (highest
// priority), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

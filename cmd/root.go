package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogtests/internal/config"
	"github.com/abhisek/cogtests/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cogtests",
	Short: "Cognitive test questions in the terminal",
	Long: "cogtests poses multiplication, anagram, analogy and number-building puzzles, " +
		"records how you do, and shares sessions through a common database so everyone " +
		"answers the same questions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv("")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COGTESTS_DB env var)")
	rootCmd.PersistentFlags().String("dictionary", "", "Path to a word list for anagrams (overrides COGTESTS_DICTIONARY env var)")
	rootCmd.Flags().Int("attempts", 0, "Attempts allowed per question, 0 for unlimited (overrides COGTESTS_ATTEMPTS env var)")
	rootCmd.Flags().Bool("tui", false, "Use the interactive answer prompt (overrides COGTESTS_TUI env var)")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("attempts") {
		cfg.Attempts, _ = flags.GetInt("attempts")
	}
	if flags.Changed("tui") {
		cfg.TUI, _ = flags.GetBool("tui")
	}
	if p, _ := flags.GetString("dictionary"); p != "" {
		cfg.DictionaryPath = p
	}
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using --db flag or
// COGTESTS_DB (highest priority), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the local database named by cfg.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

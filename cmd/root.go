package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/stepcoach/internal/config"
	"github.com/abhisek/stepcoach/internal/logging"
	"github.com/abhisek/stepcoach/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "stepcoach",
	Short: "Step-by-step coach for coding problems",
	Long: "Stepcoach walks you through a fixed sequence of problem-solving steps and " +
		"limits answer checks to four per rolling week.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STEPCOACH_DB env var)")
	rootCmd.Flags().Bool("splash", true, "Show the welcome animation")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment from this file instead of ./.env")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and routes logs to the log file. The TUI owns
// the terminal, so nothing is logged to stderr.
func setup(cmd *cobra.Command) error {
	var envFiles []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		envFiles = append(envFiles, f)
	}
	c, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.DBPath, err = resolveDBPath(cmd, c.DBPath); err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	cfg = c

	closer, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	logCloser = closer
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (STEPCOACH_DB or the default XDG path).
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return configured, nil
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// snake is the classic snake game for the terminal, with a daily high score.
//
// Usage:
//
//	snake play            - Play a game
//	snake play --menu     - Start at the menu (speed picker and score board)
//	snake scores          - Show today's best and the top runs
//	snake serve           - Start SSH server for remote play
//	snake config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Custom config YAML
//	--speed <preset>  - slow, normal or fast
//	--seed <value>    - Set RNG seed for reproducible food placement
//	--db <path>       - Set database path (default: ~/.snake/scores.db)
//	--no-db           - Keep scores in memory only
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSpeed    string
	flagSeed     int64
	flagDBPath   string
	flagNoDB     bool
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic game for the terminal. Steer the snake to the
food, grow, and avoid the walls and your own tail. The best score of each
day is kept.

Available commands:
  play     - Play a game
  scores   - View today's best and the top runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  snake play
  snake play --speed fast
  snake play --menu
  snake scores -i
  snake serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagNoDB, "no-db", false, "Keep scores in memory only")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", config.DefaultLogFile, "Log file used while the game is on screen")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config file and applies --speed.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return cfg, err
	}
	config.ApplySpeedPreset(&cfg, preset)
	return cfg, nil
}

// newLogger creates a logger writing to w at --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens --log-file for appending. The TUI owns the terminal, so
// logs go there while a game is running. An empty path discards logs.
func openLogFile() (io.WriteCloser, error) {
	if flagLogFile == "" {
		return nopCloser{io.Discard}, nil
	}
	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openStore opens the scores database. When it cannot be opened the game
// still runs with an in-memory store; close is always safe to call.
func openStore(logger *log.Logger) (store session.HighScoreStore, closeStore func()) {
	if flagNoDB {
		return session.NewMemoryStore(), func() {}
	}
	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be kept", "path", flagDBPath, "error", err)
		return session.NewMemoryStore(), func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing scores database", "error", err)
		}
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

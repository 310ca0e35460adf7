package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var flagMenu bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing snake.

Controls:
  Arrows/WASD/HJKL  - Steer
  R                 - Restart (after game over)
  M/Esc             - Back to menu (after game over, with --menu)
  Ctrl+S            - Save a screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Speed options:
  slow   - 1.5x the configured tick period
  normal - The configured tick period
  fast   - 0.6x the configured tick period

Examples:
  snake play
  snake play --speed fast
  snake play --menu
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Start at the menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		exitf("snake needs an interactive terminal")
	}

	// Check the terminal fits the board before taking over the screen
	w, h := snake.ScreenSize(cfg.Runtime(flagSeed).Grid())
	if tw, th, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil && (tw < w || th < h+1) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", tw, th, w, h+1)
	}

	logFile, err := openLogFile()
	if err != nil {
		exitf("%v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "snake")

	store, closeStore := openStore(logger)
	defer closeStore()

	opts := tui.Options{
		Logger: logger,
		Seed:   flagSeed,
	}

	logger.Info("starting", "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"period", cfg.TickPeriod.Std(), "menu", flagMenu)

	if flagMenu {
		err = tui.RunApp(cfg, store, opts)
	} else {
		err = tui.Run(cfg, store, opts)
	}
	if err != nil {
		logger.Error("game failed", "error", err)
		closeStore()
		exitf("running game: %v", err)
	}
}

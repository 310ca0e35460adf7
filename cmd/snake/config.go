package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would run with, after the config file
search and --speed are applied. The output is valid YAML and can be saved
as ~/.snake/configs/snake.yaml to customize the game.

Examples:
  snake config
  snake config --speed fast > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	os.Stdout.Write(data)
}

// numberup is a terminal tile-merging puzzle: drop numbered tiles into
// columns, merge groups of equal tiles and keep the board from overflowing.
//
// Usage:
//
//	numberup list              - List board variants
//	numberup play [variant]    - Play a variant (default: numberup)
//	numberup menu              - Pick a variant interactively
//	numberup serve             - Start SSH server for remote play
//	numberup scores <variant>  - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible tile sequences
//	--db <path>        - Set database path (default: ~/.arcade/numberup.db)
//	--config <path>    - Use a custom rules YAML
//	--log-file <path>  - Write logs to a file instead of stderr
//	--debug            - Log engine transitions
//
// NUMBERUP_CONFIG and NUMBERUP_DB, also read from a .env file, provide the
// defaults for --config and --db.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/numberup/internal/config"
	"github.com/vovakirdan/numberup/internal/games/numberup"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

// logger is set up by the root command before any subcommand runs.
var logger = log.New(os.Stderr)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("NUMBERUP_DB", "~/.arcade/numberup.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("NUMBERUP_CONFIG"), "Path to custom rules YAML")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "numberup",
	Short: "NumberUp - a tile-merging puzzle for your terminal",
	Long: `NumberUp is a column-drop puzzle. Each turn you drop the next tile into
a column. Three or more touching tiles of the same value merge into one tile
worth one more, and merges can cascade. Merging 9s clears the whole board for
a bonus. A tile dropped into a full column spills above it and must merge
immediately, or the game is over.

Available commands:
  list     - Show board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  numberup play
  numberup play numberup_large --seed 42
  numberup menu
  numberup serve --ssh :2222
  numberup scores numberup`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and checks the rules config before any screen opens.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	out := os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "numberup",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	// The terminal belongs to Bubble Tea while playing
	if flagLogFile == "" && cmd.Name() != "serve" {
		logger.SetLevel(log.ErrorLevel)
	}

	if _, err := config.LoadNumberUp(flagConfig); err != nil {
		return err
	}

	numberup.SetConfigPath(flagConfig)
	numberup.SetLogger(logger)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

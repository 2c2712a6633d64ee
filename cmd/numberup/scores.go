package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numberup/internal/registry"
	"github.com/vovakirdan/numberup/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores for a variant, with the best tile reached in
each game. Without a variant, shows a summary of every variant played.

Examples:
  numberup scores
  numberup scores numberup
  numberup scores numberup_large --limit 25
  numberup scores numberup --limit 0   # every recorded game
  numberup scores numberup --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'numberup list' to see them", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		logger.Info("scores cleared", "variant", gameID)
		fmt.Printf("Cleared scores for %s.\n", registry.Title(gameID))
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit > 0 {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'numberup play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %s\n", "Rank", "Player", "Score", "Best Tile", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-9s  %s\n", "----", "------", "-----", "---------", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-9d  %s\n",
			i+1, player, entry.Score, entry.MaxTile, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.1f  Best tile: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile)
	}
	return nil
}

// printSummary prints one line per variant that has recorded games.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieve stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %-6s  %-8s  %-9s  %s\n", "Variant", "Games", "Best", "Best Tile", "Last Played")
	fmt.Printf("  %-20s  %-6s  %-8s  %-9s  %s\n", "-------", "-----", "----", "---------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-20s  %-6d  %-8d  %-9d  %s\n",
			registry.Title(id), s.GamesCount, s.HighScore, s.BestTile, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

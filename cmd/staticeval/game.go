package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/staticeval/internal/pgn"
	"github.com/discochess/staticeval/internal/source/sourceuri"
	"github.com/discochess/staticeval/internal/stats"
)

var gameCmd = &cobra.Command{
	Use:   "game [PGN]",
	Short: "Score every position of PGN games",
	Long: `Replay games from a PGN file and score the position after each ply.

Output per game is a header line followed by one
"ply<TAB>move<TAB>score<TAB>fen" line per position, starting at ply 0.

Examples:
  # First game of a file
  staticeval game --games 1 games.pgn

  # Compressed PGN from GCS
  staticeval game gs://my-bucket/games.pgn.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runGame,
}

var maxGames int

func init() {
	gameCmd.Flags().IntVar(&maxGames, "games", 10, "max games to score (0 for all)")
	rootCmd.AddCommand(gameCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	ev, err := newEvaluator(log, stats.NewNoop())
	if err != nil {
		return err
	}
	defer ev.Close()

	rc, err := sourceuri.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	games, err := pgn.ReadGames(rc, maxGames)
	if err != nil {
		return fmt.Errorf("reading games: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, g := range games {
		results, err := ev.EvaluateAll(ctx, g.Positions)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}

		fmt.Fprintf(out, "# %s vs %s (%s), %d plies\n", g.White, g.Black, g.Result, g.Plies())
		for ply, res := range results {
			move := "-"
			if ply > 0 {
				move = g.Moves[ply-1]
			}
			fmt.Fprintf(out, "%d\t%s\t%d\t%s\n", ply, move, res.Score, res.Position)
		}
	}
	return nil
}

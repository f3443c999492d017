package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/staticeval"
	"github.com/discochess/staticeval/internal/fen"
	"github.com/discochess/staticeval/internal/stats"
)

var evalCmd = &cobra.Command{
	Use:   "eval [FEN]",
	Short: "Score a single chess position",
	Long: `Score a chess position given in FEN notation.

Only the piece placement field affects the score; side to move, castling
rights and clocks are accepted and ignored.

Examples:
  # Starting position
  staticeval eval "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Show every term of the score
  staticeval eval --breakdown "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"

  # Score the colour-flipped position
  staticeval eval --reflect "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

var (
	outputJSON    bool
	showBreakdown bool
	showTiming    bool
	reflectColors bool
)

func init() {
	evalCmd.Flags().BoolVar(&outputJSON, "json", false, "output result as JSON")
	evalCmd.Flags().BoolVar(&showBreakdown, "breakdown", false, "show material, positional and pawn terms")
	evalCmd.Flags().BoolVar(&showTiming, "timing", false, "show evaluation timing")
	evalCmd.Flags().BoolVar(&reflectColors, "reflect", false, "swap colours before scoring")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	position := args[0]
	if reflectColors {
		position = fen.Reflect(position)
	}

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

	start := time.Now()
	res, err := ev.Evaluate(cmd.Context(), position)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	elapsed := time.Since(start)

	if outputJSON {
		return printResultJSON(cmd.OutOrStdout(), res, elapsed)
	}
	printResultText(cmd.OutOrStdout(), res, elapsed)
	return nil
}

func printResultText(w io.Writer, res *staticeval.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "FEN:        %s\n", res.Position)
	fmt.Fprintf(w, "Score:      %d (%s, %s)\n", res.Score, res.Pawns(), res.Favors())
	fmt.Fprintf(w, "Phase:      %s\n", res.Phase)
	if showBreakdown {
		fmt.Fprintf(w, "Material:   %d\n", res.Material)
		fmt.Fprintf(w, "Positional: %d\n", res.Positional)
		fmt.Fprintf(w, "Pawns:      %d\n", res.PawnStructure)
		fmt.Fprintf(w, "Raw:        %d\n", res.Raw)
	}
	if showTiming {
		fmt.Fprintf(w, "Time:       %s\n", elapsed)
	}
}

type resultJSON struct {
	FEN           string `json:"fen"`
	Score         int    `json:"score"`
	Pawns         string `json:"pawns"`
	Favors        string `json:"favors"`
	Phase         string `json:"phase"`
	Material      *int   `json:"material,omitempty"`
	Positional    *int   `json:"positional,omitempty"`
	PawnStructure *int   `json:"pawn_structure,omitempty"`
	Raw           *int   `json:"raw,omitempty"`
	ElapsedNS     *int64 `json:"elapsed_ns,omitempty"`
}

func printResultJSON(w io.Writer, res *staticeval.Result, elapsed time.Duration) error {
	out := resultJSON{
		FEN:    res.Position,
		Score:  res.Score,
		Pawns:  res.Pawns(),
		Favors: res.Favors(),
		Phase:  res.Phase,
	}
	if showBreakdown {
		out.Material = &res.Material
		out.Positional = &res.Positional
		out.PawnStructure = &res.PawnStructure
		out.Raw = &res.Raw
	}
	if showTiming {
		ns := elapsed.Nanoseconds()
		out.ElapsedNS = &ns
	}
	return json.NewEncoder(w).Encode(out)
}

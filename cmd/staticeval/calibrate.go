package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/staticeval/internal/analysis"
	"github.com/discochess/staticeval/internal/eval"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Compare static scores with engine evaluations",
	Long: `Compare raw static scores against engine centipawn scores.

The source must hold Lichess evaluation records. Records without a
centipawn score (forced mates) are left out. The output reports the
correlation and the least-squares line engine = intercept + slope*static.

Examples:
  staticeval calibrate --source lichess_db_eval.jsonl.zst`,
	RunE: runCalibrate,
}

var calibrateSource string

func init() {
	calibrateCmd.Flags().StringVar(&calibrateSource, "source", "", "Lichess evaluation file path or s3:// / gs:// URI")
	_ = calibrateCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	records, err := readPositions(cmd, log, calibrateSource)
	if err != nil {
		return err
	}

	var static, engine []float64
	for _, r := range records {
		if !r.HasEngineScore() {
			continue
		}
		static = append(static, float64(eval.Evaluate(r.FEN).Raw))
		engine = append(engine, float64(*r.CP))
	}
	log.Debug("calibration samples", zap.Int("samples", len(static)))

	c, err := analysis.Calibrate(static, engine)
	if err != nil {
		return fmt.Errorf("calibrating %d samples: %w", len(static), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Samples:     %d\n", c.Samples)
	fmt.Fprintf(out, "Correlation: %.4f\n", c.Correlation)
	fmt.Fprintf(out, "Fit:         engine = %.2f + %.4f*static\n", c.Intercept, c.Slope)
	fmt.Fprintf(out, "R squared:   %.4f\n", c.RSquared)
	return nil
}

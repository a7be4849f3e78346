package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotestor/internal/pipeline"
)

var (
	compareMatrix string
	compareOrder  string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare YYC and BT on a matrix",
	Long: `Compare runs both enumerators on the basic matrix of a matrix and reports
whether they produce the same family of testors, which testors only one
of them found, and whether they were discovered in the same order.

Example:
  gotestor compare --matrix b
  gotestor compare --matrix a --order original`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareMatrix, "matrix", "m", "",
		"Matrix name from configuration or built-in presets (required)")
	compareCmd.Flags().StringVar(&compareOrder, "order", pipeline.RowOrderBoth,
		"YYC row order (original, ones-ascending, both)")
	compareCmd.MarkFlagRequired("matrix")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}
	if err := p.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	ctx, stop := setupSignalHandler(func(sig os.Signal) {
		log.Warnw("Interrupted, stopping enumeration", "signal", sig.String())
	})
	defer stop()

	opts := pipeline.Options{Algorithm: "both", RowOrder: compareOrder}
	report, execErr := p.Execute(ctx, compareMatrix, opts, nil)
	if report == nil {
		return execErr
	}

	printHeader("Enumerator Comparison: %s", compareMatrix)
	fmt.Fprintln(outputWriter)

	printSection("Runs")
	for _, run := range report.Runs {
		fmt.Fprintf(outputWriter, "  %-24s testors: %-6d evaluated: %-10d elapsed: %s\n",
			runLabel(run), run.Result.Count(), run.Result.Evaluated, run.Result.Elapsed)
	}
	fmt.Fprintln(outputWriter)

	printSection("Agreement")
	for _, a := range report.Agreements {
		printAgreement(a)
	}

	return execErr
}

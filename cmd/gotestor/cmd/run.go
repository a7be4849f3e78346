package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotestor/internal/pipeline"
)

var (
	runMatrix    string
	runAlgorithm string
	runOrder     string
	runQuiet     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the typical testors of a matrix",
	Long: `Run resolves a matrix, reduces it to its basic matrix, enumerates its
typical testors and verifies the result.

Steps performed:
  - Matrix resolution (configuration first, then built-in presets)
  - Basic matrix reduction
  - Enumeration with YYC, BT or both
  - Verification of every enumerator result
  - Agreement check between YYC and BT

Example:
  gotestor run --matrix a
  gotestor run --config testor.yaml --matrix product --algorithm yyc --order both`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runMatrix, "matrix", "m", "",
		"Matrix name from configuration or built-in presets (required)")
	runCmd.Flags().StringVarP(&runAlgorithm, "algorithm", "a", "",
		"Override enumerator (yyc, bt, both)")
	runCmd.Flags().StringVar(&runOrder, "order", "",
		"Override YYC row order (original, ones-ascending, both)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false,
		"Print only the testor lists")
	runCmd.MarkFlagRequired("matrix")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
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

	opts := pipeline.Options{Algorithm: runAlgorithm, RowOrder: runOrder}
	report, execErr := p.Execute(ctx, runMatrix, opts, nil)
	if report == nil {
		return execErr
	}

	if runQuiet {
		for _, run := range report.Runs {
			printSection(runLabel(run))
			printTestors(run.Result.Testors, run.Result.Columns)
		}
		return execErr
	}

	printReport(report)
	return execErr
}

// printReport renders a full pipeline report.
func printReport(report *pipeline.Report) {
	printHeader("Typical Testors: %s", report.Matrix)
	fmt.Fprintln(outputWriter)

	printSection("Input Matrix")
	printSideBySide(matrixLines(report.Raw), summaryLines("Input", report.Raw), 4)
	fmt.Fprintln(outputWriter)

	printSection("Basic Matrix")
	printSideBySide(matrixLines(report.Basic), summaryLines("Basic", report.Basic), 4)
	fmt.Fprintf(outputWriter, "  Removed rows: %d\n", report.Raw.Rows()-report.Basic.Rows())

	for _, run := range report.Runs {
		fmt.Fprintln(outputWriter)
		printRun(run)
	}

	if len(report.Agreements) > 0 {
		fmt.Fprintln(outputWriter)
		printSection("Agreement")
		for _, a := range report.Agreements {
			printAgreement(a)
		}
	}

	fmt.Fprintln(outputWriter)
	verdict := color.Green.Sprint("OK")
	if !report.Success {
		verdict = color.Red.Sprint("VERIFICATION FAILED")
	}
	fmt.Fprintf(outputWriter, "Result: %s in %s\n", verdict, report.Duration)
}

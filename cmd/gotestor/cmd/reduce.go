package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotestor/internal/matrix"
	"github.com/dbsmedya/gotestor/internal/pipeline"
)

var (
	reduceMatrix string
	reduceSort   bool
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Show the basic matrix of a matrix",
	Long: `Reduce removes duplicate rows and every row that has another row as a
strict subrow, then prints the resulting basic matrix and its density.

Example:
  gotestor reduce --matrix a
  gotestor reduce --matrix a --sort`,
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().StringVarP(&reduceMatrix, "matrix", "m", "",
		"Matrix name from configuration or built-in presets (required)")
	reduceCmd.Flags().BoolVar(&reduceSort, "sort", false,
		"Also show the basic matrix with rows in ascending order of ones")
	reduceCmd.MarkFlagRequired("matrix")

	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
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

	raw, basic, err := p.Reduce(reduceMatrix)
	if err != nil {
		return err
	}

	printHeader("Basic Matrix: %s", reduceMatrix)
	fmt.Fprintln(outputWriter)

	printSection("Input Matrix")
	printSideBySide(matrixLines(raw), summaryLines("Input", raw), 4)
	fmt.Fprintln(outputWriter)

	printSection("Basic Matrix")
	printSideBySide(matrixLines(basic), summaryLines("Basic", basic), 4)
	fmt.Fprintf(outputWriter, "  Removed rows: %d\n", raw.Rows()-basic.Rows())

	if reduceSort {
		fmt.Fprintln(outputWriter)
		printSection("Rows By Ascending Ones")
		printMatrix(matrix.SortByOnes(basic))
	}

	return nil
}

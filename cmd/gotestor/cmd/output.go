package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/gotestor/internal/matrix"
	"github.com/dbsmedya/gotestor/internal/pipeline"
	"github.com/dbsmedya/gotestor/internal/testor"
	"github.com/dbsmedya/gotestor/internal/verifier"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := visualWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", color.Cyan.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("-", visualWidth(title)+2))
}

// matrixLines renders m with a row index gutter.
func matrixLines(m *matrix.Bool) []string {
	if m.Rows() == 0 {
		return []string{"(empty)"}
	}
	gutter := len(fmt.Sprint(m.Rows() - 1))
	lines := make([]string, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		lines[i] = fmt.Sprintf("%*d | %s", gutter, i, matrix.FormatRow(m.Row(i)))
	}
	return lines
}

// printMatrix prints m indented under the current section.
func printMatrix(m *matrix.Bool) {
	for _, line := range matrixLines(m) {
		fmt.Fprintf(outputWriter, "  %s\n", line)
	}
}

// summaryLines describes a matrix next to its rendering.
func summaryLines(title string, m *matrix.Bool) []string {
	e := pipeline.EstimateMatrix(m)
	return []string{
		fmt.Sprintf("[ %s ]", title),
		strings.Repeat("-", visualWidth(title)+4),
		fmt.Sprintf("Rows:          %d", e.Rows),
		fmt.Sprintf("Columns:       %d", e.Cols),
		fmt.Sprintf("Density:       %.4f", e.Density),
		fmt.Sprintf("Ones per row:  %d..%d", e.MinOnes, e.MaxOnes),
	}
}

// printTestors lists testors with their column sets and 0/1 vectors.
func printTestors(testors []testor.ColumnSet, width int) {
	if len(testors) == 0 {
		fmt.Fprintln(outputWriter, "  (none)")
		return
	}
	numWidth := len(fmt.Sprint(len(testors)))
	setWidth := 0
	for _, t := range testors {
		if w := visualWidth(t.String()); w > setWidth {
			setWidth = w
		}
	}
	for i, t := range testors {
		num := fmt.Sprintf("[%*d]", numWidth, i+1)
		set := t.String()
		fmt.Fprintf(outputWriter, "  %s %s%s  %s\n",
			num,
			color.Green.Sprint(set),
			strings.Repeat(" ", setWidth-visualWidth(set)),
			matrix.FormatRow(t.Vector(width)),
		)
	}
}

// printRun prints one enumerator run with its verification verdict.
func printRun(run *pipeline.Run) {
	printSection(runLabel(run))
	printTestors(run.Result.Testors, run.Result.Columns)
	fmt.Fprintf(outputWriter, "  Testors: %d | Evaluated: %d | Elapsed: %s\n",
		run.Result.Count(), run.Result.Evaluated, run.Result.Elapsed)

	switch {
	case run.VerifyErr != nil:
		fmt.Fprintf(outputWriter, "  Verification: %s %v\n", color.Red.Sprint("FAILED"), run.VerifyErr)
	case run.Verify != nil:
		fmt.Fprintf(outputWriter, "  Verification: %s (%s, %d/%d)\n",
			color.Green.Sprint("passed"), run.Verify.Method, run.Verify.TestorsPassed, run.Verify.TestorsVerified)
	default:
		fmt.Fprintf(outputWriter, "  Verification: %s\n", color.Yellow.Sprint("skipped"))
	}
}

// printAgreement prints how two enumerator results relate.
func printAgreement(a *verifier.Agreement) {
	label := fmt.Sprintf("%s vs %s", strings.ToUpper(string(a.Left)), strings.ToUpper(string(a.Right)))
	if a.Equal() {
		order := "different discovery order"
		if a.DiscoveryOrderSame {
			order = "same discovery order"
		}
		fmt.Fprintf(outputWriter, "  %s: %s (%d testors, %s)\n", label, color.Green.Sprint("same family"), a.Common, order)
		return
	}

	fmt.Fprintf(outputWriter, "  %s: %s (%d common, %d vs %d)\n",
		label, color.Yellow.Sprint("families differ"), a.Common, a.LeftCount, a.RightCount)
	for _, t := range a.OnlyLeft {
		fmt.Fprintf(outputWriter, "    only %s: %s\n", a.Left, t)
	}
	for _, t := range a.OnlyRight {
		fmt.Fprintf(outputWriter, "    only %s: %s\n", a.Right, t)
	}
}

func runLabel(run *pipeline.Run) string {
	return fmt.Sprintf("%s (%s rows)", strings.ToUpper(string(run.Algorithm)), run.RowOrder)
}

// printSideBySide prints two blocks of text side by side
// padding is the minimum spaces between the two columns
func printSideBySide(leftLines, rightLines []string, padding int) {
	leftWidth := 0
	for _, line := range leftLines {
		if w := visualWidth(line); w > leftWidth {
			leftWidth = w
		}
	}

	height := len(leftLines)
	if len(rightLines) > height {
		height = len(rightLines)
	}

	for i := 0; i < height; i++ {
		leftPart, rightPart := "", ""
		if i < len(leftLines) {
			leftPart = leftLines[i]
		}
		if i < len(rightLines) {
			rightPart = rightLines[i]
		}

		fmt.Fprint(outputWriter, "  ", leftPart)
		if rightPart != "" {
			fmt.Fprint(outputWriter, strings.Repeat(" ", leftWidth-visualWidth(leftPart)+padding))
		}
		fmt.Fprintln(outputWriter, rightPart)
	}
}

// visualWidth returns the terminal width of s, ignoring color codes.
func visualWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}

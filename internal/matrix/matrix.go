// Package matrix provides the immutable boolean matrix used as input to the
// testor enumerators, together with the helpers that build, reorder and
// combine such matrices.
package matrix

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidShape is returned when rows of a matrix have unequal lengths.
	ErrInvalidShape = errors.New("matrix rows have unequal lengths")

	// ErrInvalidValue is returned when a cell holds anything other than 0 or 1.
	ErrInvalidValue = errors.New("matrix cell must be 0 or 1")

	// ErrShapeMismatch is returned by combinators whose operands have
	// incompatible row counts.
	ErrShapeMismatch = errors.New("matrix operands have incompatible shapes")
)

// Bool is a rectangular 0/1 matrix. A Bool is never modified after
// construction; every operation returns a new value.
type Bool struct {
	rows int
	cols int
	data [][]uint8
}

// New builds a Bool from row slices. The input is copied.
// All rows must share the same length and hold only 0 or 1.
// An empty input yields a 0x0 matrix.
func New(rows [][]uint8) (*Bool, error) {
	m := &Bool{rows: len(rows)}
	if len(rows) == 0 {
		return m, nil
	}

	m.cols = len(rows[0])
	m.data = make([][]uint8, len(rows))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), m.cols, ErrInvalidShape)
		}
		for j, v := range row {
			if v > 1 {
				return nil, fmt.Errorf("cell (%d,%d) = %d: %w", i, j, v, ErrInvalidValue)
			}
		}
		m.data[i] = append([]uint8(nil), row...)
	}
	return m, nil
}

// MustNew is like New but panics on error. Intended for fixed literals.
func MustNew(rows [][]uint8) *Bool {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Zeros returns a rows x cols matrix with every cell set to 0.
func Zeros(rows, cols int) (*Bool, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d: %w", rows, cols, ErrInvalidShape)
	}
	data := make([][]uint8, rows)
	for i := range data {
		data[i] = make([]uint8, cols)
	}
	return &Bool{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Bool) Rows() int { return m.rows }

// Cols returns the number of columns. A matrix without rows reports 0.
func (m *Bool) Cols() int { return m.cols }

// At returns the cell at (i, j) as a bool.
func (m *Bool) At(i, j int) bool { return m.data[i][j] == 1 }

// Row returns a copy of row i.
func (m *Bool) Row(i int) []uint8 {
	return append([]uint8(nil), m.data[i]...)
}

// RowsCopy returns a deep copy of every row.
func (m *Bool) RowsCopy() [][]uint8 {
	out := make([][]uint8, m.rows)
	for i := range m.data {
		out[i] = m.Row(i)
	}
	return out
}

// OnePositions returns the column indices where row i holds 1, ascending.
func (m *Bool) OnePositions(i int) []int {
	var pos []int
	for j, v := range m.data[i] {
		if v == 1 {
			pos = append(pos, j)
		}
	}
	return pos
}

// OnesInRow returns the number of ones in row i.
func (m *Bool) OnesInRow(i int) int {
	n := 0
	for _, v := range m.data[i] {
		n += int(v)
	}
	return n
}

// Equal reports whether m and other have the same shape and cells.
func (m *Bool) Equal(other *Bool) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if !rowsEqual(m.data[i], other.data[i]) {
			return false
		}
	}
	return true
}

// Density returns the share of cells equal to 1, or 0 for an empty matrix.
func (m *Bool) Density() float64 {
	if m.rows == 0 || m.cols == 0 {
		return 0
	}
	ones := 0
	for i := range m.data {
		ones += m.OnesInRow(i)
	}
	return float64(ones) / float64(m.rows*m.cols)
}

// String renders the matrix one row per line, cells separated by spaces.
func (m *Bool) String() string {
	var sb strings.Builder
	for i, row := range m.data {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(FormatRow(row))
	}
	return sb.String()
}

// FormatRow renders a row as "0 1 1".
func FormatRow(row []uint8) string {
	parts := make([]string, len(row))
	for j, v := range row {
		parts[j] = string('0' + rune(v))
	}
	return strings.Join(parts, " ")
}

func rowsEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for j := range a {
		if a[j] != b[j] {
			return false
		}
	}
	return true
}

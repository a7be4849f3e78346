package matrix

import (
	"fmt"
	"math/rand"
	"sort"
)

// SortByOnes returns a copy of m with rows ordered by ascending number of
// ones. Rows with equal counts keep their relative order.
func SortByOnes(m *Bool) *Bool {
	idx := make([]int, m.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return m.OnesInRow(idx[a]) < m.OnesInRow(idx[b])
	})

	out := &Bool{rows: m.rows, cols: m.cols, data: make([][]uint8, m.rows)}
	for i, src := range idx {
		out.data[i] = m.Row(src)
	}
	return out
}

// Block returns the rows x cols sub-matrix starting at (r0, c0).
func (m *Bool) Block(r0, c0, rows, cols int) (*Bool, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.rows || c0+cols > m.cols {
		return nil, fmt.Errorf("block %dx%d at (%d,%d) outside %dx%d matrix: %w",
			rows, cols, r0, c0, m.rows, m.cols, ErrInvalidShape)
	}
	out := &Bool{rows: rows, cols: cols, data: make([][]uint8, rows)}
	for i := 0; i < rows; i++ {
		out.data[i] = append([]uint8(nil), m.data[r0+i][c0:c0+cols]...)
	}
	return out, nil
}

// Random returns a rows x cols matrix where each cell is 1 with the given
// probability. The same seed always produces the same matrix.
func Random(rows, cols int, density float64, seed int64) (*Bool, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density %.3f outside [0,1]", density)
	}
	m, err := Zeros(rows, cols)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				m.data[i][j] = 1
			}
		}
	}
	return m, nil
}

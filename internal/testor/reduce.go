package testor

import (
	"github.com/dbsmedya/gotestor/internal/matrix"
)

// Reduce returns the basic matrix of m.
//
// Duplicate rows are dropped, keeping the first occurrence. Then every row
// whose one-positions form a strict subset of another surviving row's
// one-positions is removed, so the row with more ones is the one retained.
// Survivors keep their original relative order. An all-zero row is a
// subset of any non-zero row and disappears unless every row is zero.
//
// Complexity: O(r^2 * c) for r unique rows and c columns.
func Reduce(m *matrix.Bool) *matrix.Bool {
	unique := uniqueRows(m)

	keep := make([]bool, len(unique))
	for i := range keep {
		keep[i] = true
	}
	for i := range unique {
		for j := range unique {
			if i != j && isStrictSubrow(unique[i], unique[j]) {
				keep[i] = false
				break
			}
		}
	}

	rows := make([][]uint8, 0, len(unique))
	for i, row := range unique {
		if keep[i] {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		// Preserve the column count of a matrix whose rows all vanished.
		empty, _ := matrix.Zeros(0, m.Cols())
		return empty
	}
	return matrix.MustNew(rows)
}

// uniqueRows returns the rows of m without later duplicates.
func uniqueRows(m *matrix.Bool) [][]uint8 {
	seen := make(map[string]bool, m.Rows())
	var out [][]uint8
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		key := string(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// isStrictSubrow reports whether r <= s cell by cell and r != s.
func isStrictSubrow(r, s []uint8) bool {
	strict := false
	for j := range r {
		if r[j] > s[j] {
			return false
		}
		if r[j] < s[j] {
			strict = true
		}
	}
	return strict
}

package testor

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// bruteForceTypical returns every minimal cover of m, smallest first.
// Independent of both enumerators; only usable for narrow matrices.
func bruteForceTypical(m *matrix.Bool) []ColumnSet {
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil
	}
	rows := RowSets(m)

	var covers []ColumnSet
	for size := 1; size <= m.Cols(); size++ {
		for s := ColumnSet(1); s < ColumnSet(1)<<uint(m.Cols()); s++ {
			if s.Len() != size || !IsCover(s, rows) {
				continue
			}
			minimal := true
			for _, c := range covers {
				if c.SubsetOf(s) {
					minimal = false
					break
				}
			}
			if minimal {
				covers = append(covers, s)
			}
		}
	}
	return covers
}

// sortedSets returns a sorted copy for order-insensitive comparison.
func sortedSets(sets []ColumnSet) []ColumnSet {
	out := append([]ColumnSet(nil), sets...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sets builds a slice of ColumnSets from column lists.
func sets(cols ...[]int) []ColumnSet {
	out := make([]ColumnSet, len(cols))
	for i, c := range cols {
		out[i] = NewColumnSet(c...)
	}
	return out
}

// randomBasic returns the basic matrix of a seeded random matrix with up
// to maxRows rows and maxCols columns.
func randomBasic(t *testing.T, seed int64, maxRows, maxCols int) *matrix.Bool {
	t.Helper()
	rows := 1 + int(seed%int64(maxRows))
	cols := 1 + int((seed/int64(maxRows))%int64(maxCols))
	m, err := matrix.Random(rows, cols, 0.5, seed)
	require.NoError(t, err)
	return Reduce(m)
}

func mustPreset(t *testing.T, name string) *matrix.Bool {
	t.Helper()
	m, err := matrix.Preset(name)
	require.NoError(t, err)
	return m
}

// wideMatrix returns a single-row matrix of ones with the given width.
func wideMatrix(cols int) *matrix.Bool {
	row := make([]uint8, cols)
	for j := range row {
		row[j] = 1
	}
	return matrix.MustNew([][]uint8{row, row})
}

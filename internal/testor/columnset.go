// Package testor computes typical testors of boolean matrices: the basic
// matrix reduction and the YYC and BT enumerators.
package testor

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// MaxColumns is the widest matrix a ColumnSet can describe.
const MaxColumns = 64

// ColumnSet is a set of column indices packed into a word: column j is
// present when bit j is set.
type ColumnSet uint64

// NewColumnSet returns the set holding the given columns.
func NewColumnSet(cols ...int) ColumnSet {
	var s ColumnSet
	for _, c := range cols {
		s = s.Add(c)
	}
	return s
}

// Add returns s with column c added.
func (s ColumnSet) Add(c int) ColumnSet { return s | 1<<uint(c) }

// Has reports whether column c is in s.
func (s ColumnSet) Has(c int) bool { return s&(1<<uint(c)) != 0 }

// Len returns the number of columns in s.
func (s ColumnSet) Len() int { return bits.OnesCount64(uint64(s)) }

// Hits reports whether s shares at least one column with other.
func (s ColumnSet) Hits(other ColumnSet) bool { return s&other != 0 }

// SubsetOf reports whether every column of s is also in other.
func (s ColumnSet) SubsetOf(other ColumnSet) bool { return s&^other == 0 }

// Columns returns the members of s in ascending order.
func (s ColumnSet) Columns() []int {
	cols := make([]int, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		cols = append(cols, bits.TrailingZeros64(rest))
	}
	return cols
}

// Vector returns s as a 0/1 vector of the given width.
func (s ColumnSet) Vector(width int) []uint8 {
	v := make([]uint8, width)
	for j := 0; j < width; j++ {
		if s.Has(j) {
			v[j] = 1
		}
	}
	return v
}

// String renders s as "{0,2,5}".
func (s ColumnSet) String() string {
	cols := s.Columns()
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RowSets returns the one-positions of every row of m as ColumnSets.
// The caller must ensure m has at most MaxColumns columns.
func RowSets(m *matrix.Bool) []ColumnSet {
	sets := make([]ColumnSet, m.Rows())
	for i := range sets {
		sets[i] = NewColumnSet(m.OnePositions(i)...)
	}
	return sets
}

// IsCover reports whether s intersects every row of rows.
func IsCover(s ColumnSet, rows []ColumnSet) bool {
	for _, r := range rows {
		if !s.Hits(r) {
			return false
		}
	}
	return true
}

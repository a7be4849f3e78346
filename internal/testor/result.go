package testor

import (
	"errors"
	"fmt"
	"time"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// ErrCapacityExceeded is returned when a matrix has more columns than an
// enumerator's word-sized candidate can represent.
var ErrCapacityExceeded = errors.New("column count exceeds enumerator capacity")

// Algorithm identifies an enumerator.
type Algorithm string

const (
	// AlgorithmYYC is the row-by-row frontier construction.
	AlgorithmYYC Algorithm = "yyc"
	// AlgorithmBT is the branch-and-bound bit-vector search.
	AlgorithmBT Algorithm = "bt"
)

// Result holds the testors found by one enumerator run.
type Result struct {
	Algorithm Algorithm
	Columns   int           // width of the matrix the testors refer to
	Testors   []ColumnSet   // in discovery order
	Evaluated uint64        // candidates examined (BT vectors, YYC extensions)
	Elapsed   time.Duration // wall time of the run
}

// Count returns the number of testors found.
func (r *Result) Count() int { return len(r.Testors) }

// Vectors returns every testor as a 0/1 vector of width r.Columns.
func (r *Result) Vectors() [][]uint8 {
	out := make([][]uint8, len(r.Testors))
	for i, t := range r.Testors {
		out[i] = t.Vector(r.Columns)
	}
	return out
}

// checkCapacity fails with ErrCapacityExceeded when m is wider than limit.
func checkCapacity(alg Algorithm, m *matrix.Bool, limit int) error {
	if m.Cols() > limit {
		return fmt.Errorf("%s supports at most %d columns, matrix has %d: %w",
			alg, limit, m.Cols(), ErrCapacityExceeded)
	}
	return nil
}

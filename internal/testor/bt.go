package testor

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// MaxBTColumns is the widest matrix BT accepts: the search space 2^c must
// fit in a uint64.
const MaxBTColumns = 63

// btPollInterval is how many candidates BT evaluates between context checks.
const btPollInterval = 1 << 12

// BT enumerates testors by walking c-bit candidate vectors in increasing
// numeric order. Position 1 is the most significant bit and stands for
// column 0.
//
// A cover is accepted unless an earlier accepted testor is a subset of it,
// then the walk jumps by 2^(c-k)-1 where k is the position of its last set
// bit. A non-cover is advanced to the first vector that sets position K,
// the smallest "last one" position among the rows it leaves uncovered,
// keeping the bits before K and clearing those after. If neither step moves
// forward the walk advances by one. Accepted testors are returned in
// discovery order.
//
// The context is checked every few thousand candidates.
func BT(ctx context.Context, m *matrix.Bool) (*Result, error) {
	if err := checkCapacity(AlgorithmBT, m, MaxBTColumns); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{Algorithm: AlgorithmBT, Columns: m.Cols()}
	if m.Rows() == 0 || m.Cols() == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	width := uint(m.Cols())
	total := uint64(1) << width

	rows := RowSets(m)
	for _, r := range rows {
		// Nothing covers an all-zero row, so the walk would visit all 2^c
		// vectors and accept none.
		if r == 0 {
			result.Testors = []ColumnSet{}
			result.Elapsed = time.Since(start)
			return result, nil
		}
	}
	rowVecs := make([]uint64, len(rows))
	for i, r := range rows {
		rowVecs[i] = mirror(uint64(r), width)
	}

	var accepted []uint64
	for v := uint64(1); v < total; {
		if result.Evaluated%btPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("bt interrupted at candidate %d: %w", v, err)
			}
		}
		result.Evaluated++

		var next uint64
		if coversAll(v, rowVecs) {
			if !dominated(v, accepted) {
				accepted = append(accepted, v)
			}
			next = v + coverJump(v, width)
		} else {
			next = skipUncovered(v, rowVecs, width)
		}

		if next <= v {
			next = v + 1
		}
		v = next
	}

	result.Testors = make([]ColumnSet, len(accepted))
	for i, v := range accepted {
		result.Testors[i] = ColumnSet(mirror(v, width))
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// coverJump returns 2^(c-k)-1, at least 1, where k is the 1-based position
// of the last set bit of v.
func coverJump(v uint64, width uint) uint64 {
	k := width - uint(bits.TrailingZeros64(v))
	jump := uint64(1)<<(width-k) - 1
	if jump == 0 {
		jump = 1
	}
	return jump
}

// skipUncovered finds K, the smallest 1-based position of the last one
// over all rows v misses, and returns v with bits before K kept, bit K set
// and every later bit cleared. Without such a row it returns v unchanged.
func skipUncovered(v uint64, rowVecs []uint64, width uint) uint64 {
	k := width + 1
	for _, r := range rowVecs {
		if v&r != 0 || r == 0 {
			continue
		}
		last := width - uint(bits.TrailingZeros64(r))
		if last < k {
			k = last
		}
	}
	if k == width+1 {
		return v
	}

	shift := width - k
	prefix := v &^ (uint64(1)<<(shift+1) - 1)
	return prefix | uint64(1)<<shift
}

func coversAll(v uint64, rowVecs []uint64) bool {
	for _, r := range rowVecs {
		if v&r == 0 {
			return false
		}
	}
	return true
}

// dominated reports whether some accepted testor is a subset of v.
func dominated(v uint64, accepted []uint64) bool {
	for _, t := range accepted {
		if t&v == t {
			return true
		}
	}
	return false
}

// mirror reverses the low width bits of x, mapping column j (bit j) to
// bit width-1-j and back.
func mirror(x uint64, width uint) uint64 {
	return bits.Reverse64(x) >> (64 - width)
}

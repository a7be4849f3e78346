package matrix

import (
	"fmt"
)

// Operator names a binary matrix combinator.
type Operator string

const (
	// OpTheta concatenates every row of the left operand with every row of
	// the right operand.
	OpTheta Operator = "theta"
	// OpPhi concatenates rows pairwise; operands need equal row counts.
	OpPhi Operator = "phi"
	// OpGamma places the operands on the diagonal of a zero matrix.
	OpGamma Operator = "gamma"
)

// ValidOperator reports whether op names a known combinator.
func ValidOperator(op Operator) bool {
	switch op {
	case OpTheta, OpPhi, OpGamma:
		return true
	}
	return false
}

// Theta returns the cross product of a and b by row concatenation. The
// result has a.Rows()*b.Rows() rows in a-major order and
// a.Cols()+b.Cols() columns.
func Theta(a, b *Bool) *Bool {
	out := &Bool{rows: a.rows * b.rows, cols: a.cols + b.cols}
	out.data = make([][]uint8, 0, out.rows)
	for _, ra := range a.data {
		for _, rb := range b.data {
			out.data = append(out.data, concatRows(ra, rb))
		}
	}
	return out
}

// Phi concatenates row i of a with row i of b for every i.
// It fails with ErrShapeMismatch when the row counts differ.
func Phi(a, b *Bool) (*Bool, error) {
	if a.rows != b.rows {
		return nil, fmt.Errorf("phi needs equal row counts, got %d and %d: %w", a.rows, b.rows, ErrShapeMismatch)
	}
	out := &Bool{rows: a.rows, cols: a.cols + b.cols, data: make([][]uint8, a.rows)}
	for i := range a.data {
		out.data[i] = concatRows(a.data[i], b.data[i])
	}
	return out, nil
}

// Gamma returns the block-diagonal embedding of a and b: a in the top-left
// block, b in the bottom-right block, zeros elsewhere.
func Gamma(a, b *Bool) *Bool {
	out := &Bool{rows: a.rows + b.rows, cols: a.cols + b.cols}
	out.data = make([][]uint8, out.rows)
	for i, ra := range a.data {
		row := make([]uint8, out.cols)
		copy(row, ra)
		out.data[i] = row
	}
	for i, rb := range b.data {
		row := make([]uint8, out.cols)
		copy(row[a.cols:], rb)
		out.data[a.rows+i] = row
	}
	return out
}

// Combine applies op to a and b.
func Combine(op Operator, a, b *Bool) (*Bool, error) {
	switch op {
	case OpTheta:
		return Theta(a, b), nil
	case OpPhi:
		return Phi(a, b)
	case OpGamma:
		return Gamma(a, b), nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}

// Power applies op to the running result and itself n times, starting
// from base: Power(op, m, 2) = op(op(m, m), op(m, m)). n = 0 returns base.
func Power(op Operator, base *Bool, n int) (*Bool, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative power %d", n)
	}
	result := base
	for i := 0; i < n; i++ {
		next, err := Combine(op, result, result)
		if err != nil {
			return nil, fmt.Errorf("power step %d: %w", i+1, err)
		}
		result = next
	}
	return result, nil
}

func concatRows(a, b []uint8) []uint8 {
	row := make([]uint8, 0, len(a)+len(b))
	row = append(row, a...)
	return append(row, b...)
}

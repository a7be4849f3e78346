package pipeline

import (
	"fmt"
	"math"

	"github.com/dbsmedya/gotestor/internal/config"
	"github.com/dbsmedya/gotestor/internal/matrix"
	"github.com/dbsmedya/gotestor/internal/testor"
)

// PreflightError represents a preflight check failure. Err, when set, is
// the sentinel the enumerator itself would have returned.
type PreflightError struct {
	Check   string
	Message string
	Err     error
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

func (e *PreflightError) Unwrap() error {
	return e.Err
}

// Estimate summarizes the size of an enumeration before it runs.
type Estimate struct {
	Rows        int
	Cols        int
	Density     float64
	MinOnes     int     // fewest ones in a row
	MaxOnes     int     // most ones in a row
	SearchSpace float64 // 2^cols candidate vectors for BT
}

// EstimateMatrix reports the shape figures logged before enumeration.
func EstimateMatrix(m *matrix.Bool) Estimate {
	e := Estimate{
		Rows:        m.Rows(),
		Cols:        m.Cols(),
		Density:     m.Density(),
		SearchSpace: math.Ldexp(1, m.Cols()),
	}
	for i := 0; i < m.Rows(); i++ {
		ones := m.OnesInRow(i)
		if i == 0 || ones < e.MinOnes {
			e.MinOnes = ones
		}
		if ones > e.MaxOnes {
			e.MaxOnes = ones
		}
	}
	return e
}

// Preflight rejects matrices the selected enumerators cannot or should not
// process before any work starts.
func Preflight(m *matrix.Bool, enumeration config.EnumerationConfig, algorithms []testor.Algorithm) error {
	if enumeration.MaxColumns > 0 && m.Cols() > enumeration.MaxColumns {
		return &PreflightError{
			Check:   "max_columns",
			Message: fmt.Sprintf("basic matrix has %d columns, limit is %d", m.Cols(), enumeration.MaxColumns),
		}
	}

	for _, alg := range algorithms {
		limit := testor.MaxColumns
		if alg == testor.AlgorithmBT {
			limit = testor.MaxBTColumns
		}
		if m.Cols() > limit {
			return &PreflightError{
				Check:   "capacity",
				Message: fmt.Sprintf("%s supports at most %d columns, basic matrix has %d", alg, limit, m.Cols()),
				Err:     testor.ErrCapacityExceeded,
			}
		}
	}

	return nil
}

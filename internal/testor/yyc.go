package testor

import (
	"context"
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// RowProgress is called by YYC after each row transition with the index of
// the row just processed, the size of the new frontier and the time elapsed
// since the run started.
type RowProgress func(row, frontier int, elapsed time.Duration)

// frontier keeps candidates in the order they were first reached.
type frontier = orderedmap.OrderedMap[ColumnSet, struct{}]

// YYC enumerates testors by building a frontier of candidates one row at
// a time. The frontier starts with one singleton per one in row 0. For
// every later row, candidates that already hit the row are carried over
// and the rest are extended by each column of the row, keeping only
// extensions that are Compatible with the rows seen so far.
//
// The context is checked between rows. progress may be nil.
func YYC(ctx context.Context, m *matrix.Bool, progress RowProgress) (*Result, error) {
	if err := checkCapacity(AlgorithmYYC, m, MaxColumns); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{Algorithm: AlgorithmYYC, Columns: m.Cols()}
	if m.Rows() == 0 || m.Cols() == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	rows := RowSets(m)

	current := orderedmap.NewOrderedMap[ColumnSet, struct{}]()
	for _, col := range rows[0].Columns() {
		current.Set(NewColumnSet(col), struct{}{})
	}

	for f := 1; f < len(rows); f++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("yyc interrupted at row %d: %w", f, err)
		}

		var evaluated uint64
		current, evaluated = advanceFrontier(current, rows[:f+1])
		result.Evaluated += evaluated

		if progress != nil {
			progress(f, current.Len(), time.Since(start))
		}
	}

	result.Testors = make([]ColumnSet, 0, current.Len())
	for el := current.Front(); el != nil; el = el.Next() {
		result.Testors = append(result.Testors, el.Key)
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// advanceFrontier applies the transition for the last row of prefix and
// returns the new frontier with the number of extensions tested.
func advanceFrontier(current *frontier, prefix []ColumnSet) (*frontier, uint64) {
	row := prefix[len(prefix)-1]
	rowCols := row.Columns()

	var evaluated uint64
	next := orderedmap.NewOrderedMap[ColumnSet, struct{}]()
	for el := current.Front(); el != nil; el = el.Next() {
		candidate := el.Key
		if candidate.Hits(row) {
			next.Set(candidate, struct{}{})
			continue
		}
		// candidate misses the row, so none of rowCols is in it yet
		for _, col := range rowCols {
			ext := candidate.Add(col)
			evaluated++
			if Compatible(ext, prefix) {
				next.Set(ext, struct{}{})
			}
		}
	}
	return next, evaluated
}

// Compatible is the YYC admission test for candidate c over rows. With k
// columns in c, at least k rows must contain exactly one column of c, and
// every column of c must hold a 1 in at least one row.
func Compatible(c ColumnSet, rows []ColumnSet) bool {
	exact := 0
	var seen ColumnSet
	for _, r := range rows {
		hit := c & r
		if hit.Len() == 1 {
			exact++
		}
		seen |= hit
	}
	return exact >= c.Len() && seen == c
}

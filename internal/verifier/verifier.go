// Package verifier checks enumerator output against the matrix it came from.
package verifier

import (
	"context"
	"fmt"
	"sort"

	"github.com/dbsmedya/gotestor/internal/logger"
	"github.com/dbsmedya/gotestor/internal/matrix"
	"github.com/dbsmedya/gotestor/internal/testor"
)

// VerificationMethod defines how thoroughly a result is checked.
type VerificationMethod string

const (
	// MethodCover checks that every testor covers every row (fast)
	MethodCover VerificationMethod = "cover"
	// MethodTypical also checks that no column of a testor can be dropped
	MethodTypical VerificationMethod = "typical"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// VerifyResult holds the verdict for a single testor.
type VerifyResult struct {
	Testor       testor.ColumnSet
	Covers       bool
	Minimal      bool
	Match        bool
	ErrorMessage string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	TestorsVerified int
	TestorsPassed   int
	TestorsFailed   int
	Method          VerificationMethod
}

// MismatchError reports the first testor that failed verification.
type MismatchError struct {
	Algorithm testor.Algorithm
	Testor    testor.ColumnSet
	Reason    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("verification mismatch in %s result: testor %s %s", e.Algorithm, e.Testor, e.Reason)
}

// Verifier checks enumerator results.
type Verifier struct {
	method VerificationMethod
	logger *logger.Logger
}

// NewVerifier creates a verifier. An empty method defaults to MethodCover.
func NewVerifier(method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}

	switch method {
	case "":
		method = MethodCover
	case MethodCover, MethodTypical, MethodSkip:
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}

	return &Verifier{
		method: method,
		logger: log,
	}, nil
}

// Verify checks every testor of res against m, the basic matrix the
// enumerator ran on. It stops at the first mismatch and returns a
// *MismatchError together with the stats gathered so far.
//
// Beyond per-testor checks, duplicates are always rejected and BT results
// must be free of supersets.
func (v *Verifier) Verify(ctx context.Context, m *matrix.Bool, res *testor.Result) (*VerifyStats, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &VerifyStats{
			Method: MethodSkip,
		}, nil
	}

	if res == nil {
		return nil, fmt.Errorf("result is nil")
	}
	if m.Cols() > testor.MaxColumns {
		return nil, fmt.Errorf("matrix has %d columns, at most %d can be verified", m.Cols(), testor.MaxColumns)
	}

	stats := &VerifyStats{
		Method: v.method,
	}

	rows := testor.RowSets(m)
	limit := testor.ColumnSet(0)
	for j := 0; j < m.Cols(); j++ {
		limit = limit.Add(j)
	}

	v.logger.Debugf("Starting verification (method=%s) of %d %s testors", v.method, res.Count(), res.Algorithm)

	seen := make(map[testor.ColumnSet]bool, res.Count())
	for i, t := range res.Testors {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("verification interrupted: %w", err)
		}

		result := v.verifyTestor(t, rows, limit)
		if result.Match && seen[t] {
			result.Match = false
			result.ErrorMessage = "appears more than once"
		}
		if result.Match && res.Algorithm == testor.AlgorithmBT {
			if j := supersetOf(t, res.Testors[:i]); j >= 0 {
				result.Match = false
				result.ErrorMessage = fmt.Sprintf("contains earlier testor %s", res.Testors[j])
			}
		}
		seen[t] = true
		stats.TestorsVerified++

		if !result.Match {
			stats.TestorsFailed++
			v.logger.Errorf("Verification FAILED for %s testor %s: %s", res.Algorithm, t, result.ErrorMessage)
			return stats, &MismatchError{Algorithm: res.Algorithm, Testor: t, Reason: result.ErrorMessage}
		}
		stats.TestorsPassed++
	}

	v.logger.Infof("Verification complete: %d testors verified, %d passed, %d failed",
		stats.TestorsVerified, stats.TestorsPassed, stats.TestorsFailed)

	return stats, nil
}

// verifyTestor applies the per-testor checks of the configured method.
func (v *Verifier) verifyTestor(t testor.ColumnSet, rows []testor.ColumnSet, limit testor.ColumnSet) *VerifyResult {
	result := &VerifyResult{Testor: t}

	switch {
	case t == 0:
		result.ErrorMessage = "is empty"
		return result
	case !t.SubsetOf(limit):
		result.ErrorMessage = "refers to columns outside the matrix"
		return result
	}

	result.Covers = testor.IsCover(t, rows)
	if !result.Covers {
		result.ErrorMessage = fmt.Sprintf("misses row %d", firstMissedRow(t, rows))
		return result
	}

	if v.method == MethodTypical {
		if c, ok := redundantColumn(t, rows); ok {
			result.ErrorMessage = fmt.Sprintf("is not minimal: column %d can be removed", c)
			return result
		}
		result.Minimal = true
	}

	result.Match = true
	return result
}

// GetMethod returns the configured verification method.
func (v *Verifier) GetMethod() VerificationMethod {
	return v.method
}

func firstMissedRow(t testor.ColumnSet, rows []testor.ColumnSet) int {
	for i, r := range rows {
		if !t.Hits(r) {
			return i
		}
	}
	return -1
}

// redundantColumn returns a column whose removal leaves t a cover.
func redundantColumn(t testor.ColumnSet, rows []testor.ColumnSet) (int, bool) {
	for _, c := range t.Columns() {
		without := t &^ testor.NewColumnSet(c)
		if testor.IsCover(without, rows) {
			return c, true
		}
	}
	return 0, false
}

// supersetOf returns the index of the first earlier testor contained in t, or -1.
func supersetOf(t testor.ColumnSet, earlier []testor.ColumnSet) int {
	for j, e := range earlier {
		if e.SubsetOf(t) {
			return j
		}
	}
	return -1
}

// Agreement compares the families returned by two enumerators.
type Agreement struct {
	Left, Right        testor.Algorithm
	Common             int
	OnlyLeft           []testor.ColumnSet
	OnlyRight          []testor.ColumnSet
	LeftCount          int
	RightCount         int
	DiscoveryOrderSame bool
}

// Equal reports whether both families hold the same testors.
func (a *Agreement) Equal() bool {
	return len(a.OnlyLeft) == 0 && len(a.OnlyRight) == 0
}

// Agree compares two results as sets. Differences are sorted by size and
// then by column mask so reports are stable.
func Agree(left, right *testor.Result) *Agreement {
	a := &Agreement{
		Left:       left.Algorithm,
		Right:      right.Algorithm,
		LeftCount:  left.Count(),
		RightCount: right.Count(),
	}

	inRight := make(map[testor.ColumnSet]bool, right.Count())
	for _, t := range right.Testors {
		inRight[t] = true
	}
	inLeft := make(map[testor.ColumnSet]bool, left.Count())
	for _, t := range left.Testors {
		if inLeft[t] {
			continue
		}
		inLeft[t] = true
		if inRight[t] {
			a.Common++
		} else {
			a.OnlyLeft = append(a.OnlyLeft, t)
		}
	}
	for t := range inRight {
		if !inLeft[t] {
			a.OnlyRight = append(a.OnlyRight, t)
		}
	}

	SortTestors(a.OnlyLeft)
	SortTestors(a.OnlyRight)

	a.DiscoveryOrderSame = len(left.Testors) == len(right.Testors)
	for i := 0; a.DiscoveryOrderSame && i < len(left.Testors); i++ {
		a.DiscoveryOrderSame = left.Testors[i] == right.Testors[i]
	}

	return a
}

// SortTestors orders testors by size, then by column mask.
func SortTestors(ts []testor.ColumnSet) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Len() != ts[j].Len() {
			return ts[i].Len() < ts[j].Len()
		}
		return ts[i] < ts[j]
	})
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/gotestor/internal/config"
	"github.com/dbsmedya/gotestor/internal/logger"
	"github.com/dbsmedya/gotestor/internal/matrix"
	"github.com/dbsmedya/gotestor/internal/testor"
	"github.com/dbsmedya/gotestor/internal/verifier"
)

// Row orders fed to the YYC enumerator.
const (
	RowOrderOriginal      = "original"
	RowOrderOnesAscending = "ones-ascending"
	RowOrderBoth          = "both"
)

// Options carries per-run CLI overrides. Empty fields keep the
// configured values.
type Options struct {
	Algorithm string
	RowOrder  string
}

// Run is one enumerator execution inside a report.
type Run struct {
	Algorithm testor.Algorithm
	RowOrder  string
	Input     *matrix.Bool // basic matrix in the row order the enumerator saw
	Result    *testor.Result
	Verify    *verifier.VerifyStats
	VerifyErr error
}

// Report contains everything produced for one matrix.
type Report struct {
	Matrix      string
	Raw         *matrix.Bool
	Basic       *matrix.Bool
	Estimate    Estimate
	Runs        []*Run
	Agreements  []*verifier.Agreement
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Success     bool
}

// RunCallback is called after each enumerator run completes.
type RunCallback func(run *Run)

// Pipeline coordinates resolution, reduction, enumeration and verification
// of named matrices.
type Pipeline struct {
	config      *config.Config
	resolver    *Resolver
	logger      *logger.Logger
	initialized bool
}

// NewPipeline creates a pipeline. It must be initialized with Initialize()
// before use.
func NewPipeline(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Pipeline{
		config: cfg,
		logger: log,
	}, nil
}

// Initialize builds the derivation graph of configured matrices. Cyclic or
// dangling combine definitions fail here.
func (p *Pipeline) Initialize() error {
	if p.initialized {
		return nil
	}

	resolver, err := NewResolver(p.config, p.logger)
	if err != nil {
		return err
	}
	p.resolver = resolver
	p.initialized = true

	p.logger.Debugw("Pipeline initialized",
		"configured_matrices", len(p.config.Matrices),
		"graph_nodes", resolver.Graph().NodeCount(),
		"graph_edges", resolver.Graph().EdgeCount(),
	)
	return nil
}

// Resolver returns the matrix resolver. Returns nil if not initialized.
func (p *Pipeline) Resolver() *Resolver {
	return p.resolver
}

// Reduce resolves name and returns it together with its basic matrix.
func (p *Pipeline) Reduce(name string) (raw, basic *matrix.Bool, err error) {
	if !p.initialized {
		return nil, nil, fmt.Errorf("pipeline not initialized")
	}

	raw, err = p.resolver.Resolve(name)
	if err != nil {
		return nil, nil, err
	}
	basic = testor.Reduce(raw)

	p.logger.WithMatrix(name).Debugw("Reduced matrix",
		"rows", raw.Rows(),
		"basic_rows", basic.Rows(),
		"cols", basic.Cols(),
	)
	return raw, basic, nil
}

// Execute reduces the named matrix, runs the selected enumerators in the
// selected row orders and verifies every result. Verification failures are
// recorded on the run and reported through the returned error together
// with the full report.
func (p *Pipeline) Execute(ctx context.Context, name string, opts Options, callback RunCallback) (*Report, error) {
	if !p.initialized {
		return nil, fmt.Errorf("pipeline not initialized")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	log := p.logger.WithMatrix(name)
	enumeration := p.config.ApplyMatrixOverrides(name, opts.Algorithm, opts.RowOrder)
	verification := p.config.GetMatrixVerification(name)

	algorithms, err := parseAlgorithms(enumeration.Algorithm)
	if err != nil {
		return nil, err
	}
	orders, err := parseRowOrders(enumeration.RowOrder)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Matrix:    name,
		StartedAt: time.Now(),
	}

	raw, basic, err := p.Reduce(name)
	if err != nil {
		return nil, err
	}
	report.Raw = raw
	report.Basic = basic
	report.Estimate = EstimateMatrix(basic)

	if err := Preflight(basic, enumeration, algorithms); err != nil {
		return nil, fmt.Errorf("preflight failed for %q: %w", name, err)
	}

	log.Infow("Starting enumeration",
		"rows", raw.Rows(),
		"basic_rows", basic.Rows(),
		"cols", basic.Cols(),
		"density", report.Estimate.Density,
		"algorithms", algorithms,
		"row_orders", orders,
		"verification_method", verification.Method,
		"skip_verification", verification.SkipVerification,
	)

	var dataVerifier *verifier.Verifier
	if !verification.SkipVerification {
		dataVerifier, err = verifier.NewVerifier(verifier.VerificationMethod(verification.Method), log)
		if err != nil {
			return nil, fmt.Errorf("failed to create verifier: %w", err)
		}
	}

	var firstMismatch error
	for _, alg := range algorithms {
		for _, order := range ordersFor(alg, orders) {
			run, err := p.enumerate(ctx, log, alg, order, basic)
			if err != nil {
				return report, err
			}

			if dataVerifier != nil {
				run.Verify, run.VerifyErr = dataVerifier.Verify(ctx, run.Input, run.Result)
				if run.VerifyErr != nil && firstMismatch == nil {
					firstMismatch = run.VerifyErr
				}
			}

			report.Runs = append(report.Runs, run)
			if callback != nil {
				callback(run)
			}
		}
	}

	report.Agreements = agreements(report.Runs)
	for _, a := range report.Agreements {
		if !a.Equal() {
			log.Warnw("Enumerators disagree",
				"left", a.Left,
				"right", a.Right,
				"only_left", len(a.OnlyLeft),
				"only_right", len(a.OnlyRight),
			)
		}
	}

	report.CompletedAt = time.Now()
	report.Duration = report.CompletedAt.Sub(report.StartedAt)
	report.Success = firstMismatch == nil

	log.Infow("Enumeration completed",
		"duration", report.Duration,
		"runs", len(report.Runs),
		"success", report.Success,
	)

	if firstMismatch != nil {
		return report, fmt.Errorf("verification failed: %w", firstMismatch)
	}
	return report, nil
}

// enumerate runs one enumerator on basic in the given row order.
func (p *Pipeline) enumerate(ctx context.Context, log *logger.Logger, alg testor.Algorithm, order string, basic *matrix.Bool) (*Run, error) {
	input := basic
	if order == RowOrderOnesAscending {
		input = matrix.SortByOnes(basic)
	}
	runLog := log.WithAlgorithm(string(alg)).WithRowOrder(order)

	var (
		res *testor.Result
		err error
	)
	switch alg {
	case testor.AlgorithmYYC:
		res, err = testor.YYC(ctx, input, func(row, frontier int, elapsed time.Duration) {
			runLog.Debugw("Row processed", "row", row, "frontier", frontier, "elapsed", elapsed)
		})
	case testor.AlgorithmBT:
		res, err = testor.BT(ctx, input)
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", alg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s enumeration failed: %w", alg, err)
	}

	runLog.Infow("Enumeration finished",
		"testors", res.Count(),
		"evaluated", res.Evaluated,
		"elapsed", res.Elapsed,
	)

	return &Run{
		Algorithm: alg,
		RowOrder:  order,
		Input:     input,
		Result:    res,
	}, nil
}

// agreements compares every YYC run with every BT run.
func agreements(runs []*Run) []*verifier.Agreement {
	var out []*verifier.Agreement
	for _, left := range runs {
		if left.Algorithm != testor.AlgorithmYYC {
			continue
		}
		for _, right := range runs {
			if right.Algorithm == testor.AlgorithmBT {
				out = append(out, verifier.Agree(left.Result, right.Result))
			}
		}
	}
	return out
}

func parseAlgorithms(s string) ([]testor.Algorithm, error) {
	switch s {
	case "yyc":
		return []testor.Algorithm{testor.AlgorithmYYC}, nil
	case "bt":
		return []testor.Algorithm{testor.AlgorithmBT}, nil
	case "both", "":
		return []testor.Algorithm{testor.AlgorithmYYC, testor.AlgorithmBT}, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q (must be 'yyc', 'bt', or 'both')", s)
	}
}

func parseRowOrders(s string) ([]string, error) {
	switch s {
	case RowOrderOriginal, "":
		return []string{RowOrderOriginal}, nil
	case RowOrderOnesAscending:
		return []string{RowOrderOnesAscending}, nil
	case RowOrderBoth:
		return []string{RowOrderOriginal, RowOrderOnesAscending}, nil
	default:
		return nil, fmt.Errorf("unsupported row order %q (must be 'original', 'ones-ascending', or 'both')", s)
	}
}

// ordersFor returns the row orders worth running for alg. BT output does
// not depend on row order, so it always runs once on the original order.
func ordersFor(alg testor.Algorithm, orders []string) []string {
	if alg == testor.AlgorithmBT {
		return []string{RowOrderOriginal}
	}
	return orders
}

// Package pipeline provides the reduce / enumerate / verify orchestration for GoTestor.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/dbsmedya/gotestor/internal/config"
	"github.com/dbsmedya/gotestor/internal/graph"
	"github.com/dbsmedya/gotestor/internal/logger"
	"github.com/dbsmedya/gotestor/internal/matrix"
)

// ErrUnknownMatrix is returned when a name is neither configured nor a preset.
var ErrUnknownMatrix = errors.New("unknown matrix")

// Entry describes one matrix available to the resolver.
type Entry struct {
	Name        string
	Source      string // rows, generate, combine or preset
	Description string
	UsedBy      []string // matrices combined from this one
}

// Resolver turns matrix names into matrices. Configured matrices take
// precedence over built-in presets of the same name; combined matrices are
// built after their operands, following the derivation graph.
type Resolver struct {
	cfg    *config.Config
	graph  *graph.Graph
	logger *logger.Logger
	built  map[string]*matrix.Bool
}

// NewResolver builds the derivation graph for cfg and fails on undefined
// operands or cyclic definitions.
func NewResolver(cfg *config.Config, log *logger.Logger) (*Resolver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	g, err := graph.BuildFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build derivation graph: %w", err)
	}

	return &Resolver{
		cfg:    cfg,
		graph:  g,
		logger: log,
		built:  make(map[string]*matrix.Bool),
	}, nil
}

// Resolve returns the matrix called name, building its operands first.
func (r *Resolver) Resolve(name string) (*matrix.Bool, error) {
	if m, ok := r.built[name]; ok {
		return m, nil
	}

	if !r.graph.HasNode(name) {
		if !matrix.HasPreset(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMatrix, name)
		}
		m, err := matrix.Preset(name)
		if err != nil {
			return nil, err
		}
		r.built[name] = m
		return m, nil
	}

	order, err := r.graph.BuildOrder(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compute build order for %q: %w", name, err)
	}
	r.logger.Debugw("Resolving matrix", "matrix", name, "build_order", order)

	for _, step := range order {
		if _, ok := r.built[step]; ok {
			continue
		}
		m, err := r.build(step)
		if err != nil {
			return nil, fmt.Errorf("failed to build matrix %q: %w", step, err)
		}
		r.built[step] = m
	}

	return r.built[name], nil
}

// build constructs one node whose operands are already built.
func (r *Resolver) build(name string) (*matrix.Bool, error) {
	node := r.graph.GetNode(name)

	switch node.Kind {
	case graph.KindPreset:
		return matrix.Preset(name)
	case graph.KindRows:
		return matrix.Parse(r.cfg.Matrices[name].Rows)
	case graph.KindGenerate:
		gen := r.cfg.Matrices[name].Generate
		return matrix.Random(gen.Rows, gen.Cols, gen.Density, gen.Seed)
	case graph.KindCombine:
		combine := r.cfg.Matrices[name].Combine
		op := matrix.Operator(combine.Operator)

		left, right, err := r.operands(name)
		if err != nil {
			return nil, err
		}
		m, err := matrix.Combine(op, left, right)
		if err != nil {
			return nil, err
		}
		if combine.Power > 0 {
			m, err = matrix.Power(op, m, combine.Power)
			if err != nil {
				return nil, err
			}
		}
		r.logger.Debugw("Combined matrix",
			"matrix", name,
			"operator", combine.Operator,
			"power", combine.Power,
			"rows", m.Rows(),
			"cols", m.Cols(),
		)
		return m, nil
	default:
		return nil, fmt.Errorf("matrix %q has unknown source %q", name, node.Kind)
	}
}

// operands returns the built left and right operands of a combined matrix,
// following the slots recorded on its graph edges.
func (r *Resolver) operands(name string) (left, right *matrix.Bool, err error) {
	for _, parent := range r.graph.GetParents(name) {
		for _, meta := range r.graph.GetEdgeMeta(parent, name) {
			switch meta.Side {
			case graph.SideLeft:
				left = r.built[parent]
			case graph.SideRight:
				right = r.built[parent]
			}
		}
	}
	if left == nil || right == nil {
		return nil, nil, fmt.Errorf("matrix %q: operands not built", name)
	}
	return left, right, nil
}

// usedBy lists the matrices derived directly from name, without repeats.
func (r *Resolver) usedBy(name string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, child := range r.graph.GetChildren(name) {
		if !seen[child] {
			seen[child] = true
			out = append(out, child)
		}
	}
	return out
}

// Catalog lists configured matrices followed by the presets they do not shadow.
func (r *Resolver) Catalog() []Entry {
	var entries []Entry
	for _, name := range r.cfg.ListMatrices() {
		mc := r.cfg.Matrices[name]
		entries = append(entries, Entry{
			Name:        name,
			Source:      mc.Source(),
			Description: mc.Description,
			UsedBy:      r.usedBy(name),
		})
	}
	for _, name := range matrix.PresetNames() {
		if _, shadowed := r.cfg.Matrices[name]; shadowed {
			continue
		}
		entries = append(entries, Entry{
			Name:        name,
			Source:      graph.KindPreset,
			Description: matrix.PresetDescription(name),
			UsedBy:      r.usedBy(name),
		})
	}
	return entries
}

// Graph returns the derivation graph.
func (r *Resolver) Graph() *graph.Graph {
	return r.graph
}

package graph

import (
	"fmt"

	"github.com/dbsmedya/gotestor/internal/config"
	"github.com/dbsmedya/gotestor/internal/matrix"
)

// Builder constructs a derivation graph from the matrices of a configuration.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a new graph builder for the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build adds one node per configured matrix, plus one per built-in preset
// used as an operand, and one edge per operand. Configured names shadow
// presets. The graph is validated before it is returned.
func (b *Builder) Build() (*Graph, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	g := NewGraph()
	names := b.cfg.ListMatrices()

	for _, name := range names {
		mc := b.cfg.Matrices[name]
		kind := mc.Source()
		if kind == "" {
			return nil, fmt.Errorf("matrix %q must set exactly one of rows, generate or combine", name)
		}

		node := &Node{Kind: kind}
		if mc.Combine != nil {
			node.Operator = mc.Combine.Operator
			node.Power = mc.Combine.Power
		}
		g.AddNode(name, node)
	}

	for _, name := range names {
		combine := b.cfg.Matrices[name].Combine
		if combine == nil {
			continue
		}

		operands := []struct{ side, ref string }{
			{SideLeft, combine.Left},
			{SideRight, combine.Right},
		}
		for _, op := range operands {
			if op.ref == "" {
				return nil, fmt.Errorf("matrix %q: %s operand is empty", name, op.side)
			}
			if !g.HasNode(op.ref) {
				if !matrix.HasPreset(op.ref) {
					return nil, fmt.Errorf("matrix %q: %s operand %q is not defined", name, op.side, op.ref)
				}
				g.AddNode(op.ref, &Node{Kind: KindPreset})
			}
			g.AddEdgeWithMeta(op.ref, name, op.side)
		}
	}

	// Fail fast on cyclic definitions
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// BuildFromConfig is a convenience function that builds a graph directly from a configuration.
func BuildFromConfig(cfg *config.Config) (*Graph, error) {
	return NewBuilder(cfg).Build()
}

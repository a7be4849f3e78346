package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dbsmedya/gotestor/internal/config"
)

func combineCfg(op, left, right string) config.MatrixConfig {
	return config.MatrixConfig{Combine: &config.CombineConfig{Operator: op, Left: left, Right: right}}
}

func TestNewBuilder(t *testing.T) {
	cfg := config.DefaultConfig()

	builder := NewBuilder(cfg)
	if builder == nil {
		t.Fatal("NewBuilder returned nil")
	}
	if builder.cfg != cfg {
		t.Error("Builder cfg field not set correctly")
	}
}

func TestBuild_NoMatrices(t *testing.T) {
	g, err := BuildFromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestBuild_NilConfig(t *testing.T) {
	if _, err := NewBuilder(nil).Build(); err == nil {
		t.Error("Expected error for nil configuration")
	}
}

func TestBuild_SourcesAndPresets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matrices["small"] = config.MatrixConfig{Rows: []string{"101", "011"}}
	cfg.Matrices["noise"] = config.MatrixConfig{Generate: &config.GenerateConfig{Rows: 3, Cols: 3, Density: 0.5}}
	product := combineCfg("theta", "small", "basic-a")
	product.Combine.Power = 2
	cfg.Matrices["product"] = product

	g, err := BuildFromConfig(cfg)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	wantKinds := map[string]string{
		"small":   KindRows,
		"noise":   KindGenerate,
		"product": KindCombine,
		"basic-a": KindPreset,
	}
	if g.NodeCount() != len(wantKinds) {
		t.Errorf("Expected %d nodes, got %d: %v", len(wantKinds), g.NodeCount(), g.AllNodes())
	}
	for name, kind := range wantKinds {
		node := g.GetNode(name)
		if node == nil {
			t.Errorf("Node %q not found", name)
			continue
		}
		if node.Kind != kind {
			t.Errorf("Node %q: expected kind %q, got %q", name, kind, node.Kind)
		}
	}

	node := g.GetNode("product")
	if node.Operator != "theta" || node.Power != 2 {
		t.Errorf("Unexpected combine node: %+v", node)
	}

	if meta := g.GetEdgeMeta("small", "product"); len(meta) != 1 || meta[0].Side != "left" {
		t.Errorf("Expected small as left operand, got %+v", meta)
	}
	if meta := g.GetEdgeMeta("basic-a", "product"); len(meta) != 1 || meta[0].Side != "right" {
		t.Errorf("Expected basic-a as right operand, got %+v", meta)
	}
}

func TestBuild_ConfiguredNameShadowsPreset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matrices["a"] = config.MatrixConfig{Rows: []string{"11"}}
	cfg.Matrices["aa"] = combineCfg("phi", "a", "a")

	g, err := BuildFromConfig(cfg)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if g.GetNode("a").Kind != KindRows {
		t.Errorf("Expected configured 'a' to win over the preset, got %q", g.GetNode("a").Kind)
	}
	if g.InDegree("aa") != 2 {
		t.Errorf("Expected both operand slots recorded, got in-degree %d", g.InDegree("aa"))
	}
}

func TestBuild_ChainedCombinations(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matrices["step1"] = combineCfg("theta", "a", "b")
	cfg.Matrices["step2"] = combineCfg("gamma", "step1", "basic-a")
	cfg.Matrices["step3"] = combineCfg("phi", "step2", "step2")

	g, err := BuildFromConfig(cfg)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	order, err := g.BuildOrder("step3")
	if err != nil {
		t.Fatalf("BuildOrder() failed: %v", err)
	}

	want := []string{"a", "b", "basic-a", "step1", "step2", "step3"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("BuildOrder(step3) = %v, want %v", order, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		matrices map[string]config.MatrixConfig
		wantErr  string
	}{
		{
			name:     "no source",
			matrices: map[string]config.MatrixConfig{"empty": {}},
			wantErr:  "exactly one of",
		},
		{
			name:     "empty operand",
			matrices: map[string]config.MatrixConfig{"x": combineCfg("theta", "a", "")},
			wantErr:  "right operand is empty",
		},
		{
			name:     "undefined operand",
			matrices: map[string]config.MatrixConfig{"x": combineCfg("theta", "ghost", "a")},
			wantErr:  `left operand "ghost" is not defined`,
		},
		{
			name:     "self reference",
			matrices: map[string]config.MatrixConfig{"loop": combineCfg("theta", "loop", "a")},
			wantErr:  "cycle detected",
		},
		{
			name: "mutual reference",
			matrices: map[string]config.MatrixConfig{
				"x": combineCfg("theta", "y", "a"),
				"y": combineCfg("phi", "b", "x"),
			},
			wantErr: "Cycle path: x -> y -> x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Matrices = tt.matrices

			_, err := BuildFromConfig(cfg)
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuild_CycleErrorIsTyped(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matrices["x"] = combineCfg("theta", "x", "x")

	_, err := BuildFromConfig(cfg)

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Expected wrapped *CycleError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrCycleDetected) {
		t.Error("Expected error to match ErrCycleDetected")
	}
}

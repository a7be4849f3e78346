package graph

import (
	"reflect"
	"strings"
	"testing"
)

// ring builds a cycle through the given names in order.
func ring(names ...string) *Graph {
	g := NewGraph()
	for _, name := range names {
		g.AddNode(name, &Node{Kind: KindCombine})
	}
	for i, name := range names {
		g.AddEdge(name, names[(i+1)%len(names)])
	}
	return g
}

// ============================================================================
// CycleError Error Message Tests
// ============================================================================

func TestCycleError_ImplementsErrorInterface(t *testing.T) {
	var _ error = &CycleError{Info: &CycleInfo{}}
}

func TestCycleError_ErrorMessage_ContainsBasicInfo(t *testing.T) {
	info := &CycleInfo{
		TotalNodes:        5,
		ProcessedNodes:    2,
		UnprocessedNodes:  []string{"A", "B", "C"},
		CycleParticipants: []string{"A", "B"},
	}
	msg := (&CycleError{Info: info}).Error()

	if !strings.Contains(msg, "cycle detected") {
		t.Error("Error message should contain 'cycle detected'")
	}
	if !strings.Contains(msg, "3 of 5 matrices could not be built") {
		t.Errorf("Error message should contain counts, got:\n%s", msg)
	}
	if !strings.Contains(msg, "Matrices in cycle: A, B") {
		t.Errorf("Error message should list cycle members, got:\n%s", msg)
	}
	if !strings.Contains(msg, "Matrices blocked by cycle: C") {
		t.Errorf("Error message should list blocked matrices, got:\n%s", msg)
	}
}

func TestCycleError_ErrorMessage_WithCyclePath(t *testing.T) {
	info := &CycleInfo{
		TotalNodes:        3,
		UnprocessedNodes:  []string{"A", "B", "C"},
		CycleParticipants: []string{"A", "B", "C"},
		CyclePath:         []string{"A", "B", "C", "A"},
	}
	msg := (&CycleError{Info: info}).Error()

	if !strings.Contains(msg, "Cycle path: A -> B -> C -> A") {
		t.Errorf("Error message should show cycle path, got:\n%s", msg)
	}
	if strings.Contains(msg, "blocked") {
		t.Errorf("No matrices are blocked, got:\n%s", msg)
	}
}

func TestCycleError_EmptyCyclePath(t *testing.T) {
	for _, path := range [][]string{nil, {}} {
		info := &CycleInfo{
			TotalNodes:        3,
			UnprocessedNodes:  []string{"A", "B", "C"},
			CycleParticipants: []string{"A", "B", "C"},
			CyclePath:         path,
		}
		msg := (&CycleError{Info: info}).Error()
		if strings.Contains(msg, "Cycle path:") {
			t.Errorf("Empty path should not be printed, got:\n%s", msg)
		}
	}
}

// ============================================================================
// Detection Tests
// ============================================================================

func TestFindCycle_ThreeMatrixCycle(t *testing.T) {
	info := ring("A", "B", "C").FindCycle()
	if info == nil {
		t.Fatal("Expected CycleInfo, got nil")
	}

	if info.TotalNodes != 3 {
		t.Errorf("TotalNodes: expected 3, got %d", info.TotalNodes)
	}
	if info.ProcessedNodes != 0 {
		t.Errorf("ProcessedNodes: expected 0, got %d", info.ProcessedNodes)
	}
	if !reflect.DeepEqual(info.CycleParticipants, []string{"A", "B", "C"}) {
		t.Errorf("Unexpected participants: %v", info.CycleParticipants)
	}
	if !reflect.DeepEqual(info.CyclePath, []string{"A", "B", "C", "A"}) {
		t.Errorf("Unexpected cycle path: %v", info.CyclePath)
	}
}

func TestFindCycle_BlockedMatrices(t *testing.T) {
	// A -> B -> A is a cycle, C is derived from B, base -> ok is fine.
	g := ring("A", "B")
	g.AddNode("C", nil)
	g.AddNode("base", nil)
	g.AddNode("ok", nil)
	g.AddEdge("B", "C")
	g.AddEdge("base", "ok")

	info := g.FindCycle()
	if info == nil {
		t.Fatal("Expected CycleInfo, got nil")
	}

	if info.ProcessedNodes != 2 {
		t.Errorf("Expected 2 processed nodes, got %d", info.ProcessedNodes)
	}
	if !reflect.DeepEqual(info.UnprocessedNodes, []string{"A", "B", "C"}) {
		t.Errorf("Unexpected unprocessed nodes: %v", info.UnprocessedNodes)
	}
	if !reflect.DeepEqual(info.CycleParticipants, []string{"A", "B"}) {
		t.Errorf("Unexpected participants: %v", info.CycleParticipants)
	}

	if !reflect.DeepEqual(info.Blocked(), []string{"C"}) {
		t.Errorf("Unexpected blocked matrices: %v", info.Blocked())
	}

	msg := (&CycleError{Info: info}).Error()
	if !strings.Contains(msg, "Matrices blocked by cycle: C") {
		t.Errorf("Expected C to be reported as blocked, got:\n%s", msg)
	}
}

func TestFindCycle_SelfReference(t *testing.T) {
	g := NewGraph()
	g.AddNode("loop", &Node{Kind: KindCombine})
	g.AddEdge("loop", "loop")

	info := g.FindCycle()
	if info == nil {
		t.Fatal("Expected CycleInfo for self reference")
	}
	if !reflect.DeepEqual(info.CycleParticipants, []string{"loop"}) {
		t.Errorf("Unexpected participants: %v", info.CycleParticipants)
	}
	if !reflect.DeepEqual(info.CyclePath, []string{"loop", "loop"}) {
		t.Errorf("Unexpected cycle path: %v", info.CyclePath)
	}
}

func TestFindCycle_NoCycleReturnsNil(t *testing.T) {
	if info := diamond().FindCycle(); info != nil {
		t.Errorf("Expected nil for valid DAG, got %+v", info)
	}
}

func TestCyclePath_NoCycle(t *testing.T) {
	g := diamond()
	allowed := map[string]bool{"a": true, "b": true, "x": true, "y": true}

	if path := g.CyclePath("a", allowed); path != nil {
		t.Errorf("Expected nil path for acyclic graph, got %v", path)
	}
}

func TestCyclePath_RespectsAllowedNodes(t *testing.T) {
	g := ring("A", "B", "C")

	if path := g.CyclePath("A", map[string]bool{"A": true, "B": true}); path != nil {
		t.Errorf("Expected no path when C is excluded, got %v", path)
	}
}

func TestCyclePath_Shortest(t *testing.T) {
	// A -> B -> C -> A and the shortcut B -> A.
	g := ring("A", "B", "C")
	g.AddEdge("B", "A")
	all := map[string]bool{"A": true, "B": true, "C": true}

	if path := g.CyclePath("A", all); !reflect.DeepEqual(path, []string{"A", "B", "A"}) {
		t.Errorf("Expected the two-matrix cycle, got %v", path)
	}
}

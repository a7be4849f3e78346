package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
)

// ErrCycleDetected is returned when matrix definitions depend on each other
// in a loop, so no build order exists.
var ErrCycleDetected = errors.New("cycle detected in derivation graph")

// CycleInfo describes the matrices a Kahn pass could not place.
type CycleInfo struct {
	TotalNodes        int      // matrices in the graph
	ProcessedNodes    int      // matrices placed in build order
	UnprocessedNodes  []string // on a cycle or derived from one, sorted
	CycleParticipants []string // the subset of UnprocessedNodes that lies on a cycle
	CyclePath         []string // one cycle, first node repeated at the end
}

// Blocked returns the unprocessed matrices that are not on a cycle
// themselves but depend on one.
func (c *CycleInfo) Blocked() []string {
	onCycle := make(map[string]bool, len(c.CycleParticipants))
	for _, name := range c.CycleParticipants {
		onCycle[name] = true
	}

	var blocked []string
	for _, name := range c.UnprocessedNodes {
		if !onCycle[name] {
			blocked = append(blocked, name)
		}
	}
	return blocked
}

// CycleError reports which matrices form a cycle and which are blocked by it.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle detected in derivation graph: %d of %d matrices could not be built",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)

	if len(e.Info.CyclePath) > 0 {
		fmt.Fprintf(&b, "\nCycle path: %s", strings.Join(e.Info.CyclePath, " -> "))
	}
	if len(e.Info.CycleParticipants) > 0 {
		fmt.Fprintf(&b, "\nMatrices in cycle: %s", strings.Join(e.Info.CycleParticipants, ", "))
	}
	if blocked := e.Info.Blocked(); len(blocked) > 0 {
		fmt.Fprintf(&b, "\nMatrices blocked by cycle: %s", strings.Join(blocked, ", "))
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrCycleDetected.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// kahnPass runs Kahn's algorithm once and returns the nodes it could place.
// Nodes with no operands start the queue in name order, so the result is
// reproducible. A matrix combined with itself waits for both edges.
func (g *Graph) kahnPass() []string {
	pending := make(map[string]int, len(g.Nodes))
	queue := list.New()
	for _, name := range g.AllNodes() {
		pending[name] = g.InDegree(name)
		if pending[name] == 0 {
			queue.PushBack(name)
		}
	}

	order := make([]string, 0, len(g.Nodes))
	for queue.Len() > 0 {
		node := queue.Remove(queue.Front()).(string)
		order = append(order, node)

		for _, child := range g.GetChildren(node) {
			pending[child]--
			if pending[child] == 0 {
				queue.PushBack(child)
			}
		}
	}
	return order
}

// TopologicalSort returns matrices in build order: every operand comes
// before the matrices derived from it. Returns a *CycleError if the graph
// contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	order := g.kahnPass()
	if len(order) != len(g.Nodes) {
		return nil, &CycleError{Info: g.cycleInfo(order)}
	}
	return order, nil
}

// FindCycle returns nil when every matrix can be built, and otherwise
// describes the cycle that prevents it.
func (g *Graph) FindCycle() *CycleInfo {
	order := g.kahnPass()
	if len(order) == len(g.Nodes) {
		return nil
	}
	return g.cycleInfo(order)
}

func (g *Graph) cycleInfo(order []string) *CycleInfo {
	placed := make(map[string]bool, len(order))
	for _, name := range order {
		placed[name] = true
	}

	info := &CycleInfo{
		TotalNodes:     len(g.Nodes),
		ProcessedNodes: len(order),
	}
	stuck := make(map[string]bool)
	for _, name := range g.AllNodes() {
		if !placed[name] {
			info.UnprocessedNodes = append(info.UnprocessedNodes, name)
			stuck[name] = true
		}
	}

	for _, name := range info.UnprocessedNodes {
		path := g.CyclePath(name, stuck)
		if path == nil {
			continue
		}
		info.CycleParticipants = append(info.CycleParticipants, name)
		if info.CyclePath == nil {
			info.CyclePath = path
		}
	}
	return info
}

// CyclePath returns the shortest cycle from start back to itself that only
// passes through nodes in within, as [start, ..., start]. It returns nil
// when start is not on such a cycle.
func (g *Graph) CyclePath(start string, within map[string]bool) []string {
	via := make(map[string]string)
	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)
		for _, child := range g.GetChildren(current) {
			if !within[child] {
				continue
			}
			if child == start {
				return closeCycle(start, current, via)
			}
			if _, seen := via[child]; seen {
				continue
			}
			via[child] = current
			queue.PushBack(child)
		}
	}
	return nil
}

// closeCycle walks via back from last to start and returns the cycle in
// forward order.
func closeCycle(start, last string, via map[string]string) []string {
	var back []string
	for node := last; node != start; node = via[node] {
		back = append(back, node)
	}

	path := make([]string, 0, len(back)+2)
	path = append(path, start)
	for i := len(back) - 1; i >= 0; i-- {
		path = append(path, back[i])
	}
	return append(path, start)
}

// BuildOrder returns the matrices that must be built to obtain target, in
// dependency order and ending with target itself.
func (g *Graph) BuildOrder(target string) ([]string, error) {
	if !g.HasNode(target) {
		return nil, fmt.Errorf("matrix %q is not in the derivation graph", target)
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	needed := g.Ancestors(target)
	result := make([]string, 0, len(needed))
	for _, name := range order {
		if needed[name] {
			result = append(result, name)
		}
	}
	return result, nil
}

// Validate checks the graph for cycles. Call it right after building so
// broken definitions fail before any enumeration starts.
func (g *Graph) Validate() error {
	if info := g.FindCycle(); info != nil {
		return &CycleError{Info: info}
	}
	return nil
}

// Package graph provides the derivation graph of named matrices for GoTestor.
// Every matrix built by combining two others depends on its operands; the
// graph orders those builds and rejects cyclic definitions.
package graph

import "sort"

// Node kinds mirror the source of a matrix.
const (
	KindRows     = "rows"
	KindGenerate = "generate"
	KindCombine  = "combine"
	KindPreset   = "preset"
)

// Node represents a named matrix in the derivation graph.
type Node struct {
	Name     string // Matrix name
	Kind     string // rows, generate, combine or preset
	Operator string // theta, phi or gamma (combine only)
	Power    int    // Extra self-applications of Operator (combine only)
}

// Edge represents an operand -> derived matrix relationship.
type Edge struct {
	From string // Operand matrix name
	To   string // Derived matrix name
}

// Operand slots of a combine edge.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// EdgeMeta contains metadata about an edge relationship.
type EdgeMeta struct {
	Side string // SideLeft or SideRight
}

// Graph holds the matrices of one configuration and their derivations.
type Graph struct {
	Nodes        map[string]*Node    // matrix name -> node
	Children     map[string][]string // operand -> derived matrices (outgoing edges)
	Parents      map[string][]string // derived matrix -> operands (incoming edges)
	edgeMetadata map[Edge][]*EdgeMeta
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge][]*EdgeMeta),
	}
}

// AddNode adds a matrix node to the graph.
// If node is nil, a new node with default values is created.
func (g *Graph) AddNode(name string, node *Node) {
	if node == nil {
		node = &Node{Name: name}
	}
	node.Name = name
	g.Nodes[name] = node
}

// AddEdge adds an operand -> derived relationship to the graph.
// It also maintains the reverse mapping for efficient parent lookups.
// The same pair may be added twice when a matrix is combined with itself.
func (g *Graph) AddEdge(operand, derived string) {
	g.Children[operand] = append(g.Children[operand], derived)
	g.Parents[derived] = append(g.Parents[derived], operand)
}

// AddEdgeWithMeta adds an edge and records which operand slot it fills.
func (g *Graph) AddEdgeWithMeta(operand, derived, side string) {
	g.AddEdge(operand, derived)

	edge := Edge{From: operand, To: derived}
	g.edgeMetadata[edge] = append(g.edgeMetadata[edge], &EdgeMeta{Side: side})
}

// GetChildren returns all matrices derived directly from operand.
func (g *Graph) GetChildren(operand string) []string {
	return g.Children[operand]
}

// GetParents returns the operands of a derived matrix.
func (g *Graph) GetParents(derived string) []string {
	return g.Parents[derived]
}

// GetNode returns the node for a given matrix name, or nil if not found.
func (g *Graph) GetNode(name string) *Node {
	return g.Nodes[name]
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(operand, derived string) []*EdgeMeta {
	return g.edgeMetadata[Edge{From: operand, To: derived}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes[name]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.Children {
		count += len(children)
	}
	return count
}

// AllNodes returns all matrix names in the graph, sorted.
func (g *Graph) AllNodes() []string {
	nodes := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// InDegree returns the number of operand edges of a node; a matrix
// combined with itself counts that operand twice.
func (g *Graph) InDegree(name string) int {
	return len(g.Parents[name])
}

// Ancestors returns every matrix that name is derived from, directly or
// transitively, plus name itself. Unknown names give an empty set.
func (g *Graph) Ancestors(name string) map[string]bool {
	seen := make(map[string]bool)
	if !g.HasNode(name) {
		return seen
	}

	stack := []string{name}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[current] {
			continue
		}
		seen[current] = true
		stack = append(stack, g.Parents[current]...)
	}
	return seen
}

// Package domain contains the core domain models for wrapped builds and their dependency graph.
package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of build nodes.
type Graph struct {
	root           string
	nodes          map[string]Node
	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
	}
}

// SetRoot sets the directory the graph was loaded from.
func (g *Graph) SetRoot(root string) {
	g.root = root
}

// Root returns the directory the graph was loaded from. Build records are
// kept below it.
func (g *Graph) Root() string {
	return g.root
}

// AddNode adds a node to the graph.
// It returns an error if a node with the same name already exists.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.nodes[n.Name]; exists {
		return zerr.With(ErrNodeAlreadyExists, "node", n.Name)
	}
	g.nodes[n.Name] = n.Clone()
	return nil
}

// GetNode returns the node with the given name.
func (g *Graph) GetNode(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Validate checks for missing dependencies and cycles using a topological sort.
// It populates the execution order if successful. Nodes are visited in name
// order so the resulting order is stable across runs.
func (g *Graph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.nodes))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u)
		}

		for _, dep := range node.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(g.nodes)) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}

// Walk returns an iterator that yields nodes in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

package domain

import (
	"maps"
	"slices"
)

// Node is one wrapped build in the graph.
type Node struct {
	Name         string
	Dependencies []string
	Options      Options
	Sources      []string
	Targets      []Target
}

// AllSources returns the files the node depends on: the configure script, if any,
// followed by the declared sources.
func (n *Node) AllSources() []string {
	out := make([]string, 0, len(n.Sources)+1)
	if n.Options.Configure != "" {
		out = append(out, n.Options.Configure)
	}
	return append(out, n.Sources...)
}

// TargetPaths returns the declared target paths in declaration order.
func (n *Node) TargetPaths() []string {
	paths := make([]string, len(n.Targets))
	for i, t := range n.Targets {
		paths[i] = t.Path
	}
	return paths
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() Node {
	c := *n
	c.Dependencies = slices.Clone(n.Dependencies)
	c.Sources = slices.Clone(n.Sources)
	c.Targets = slices.Clone(n.Targets)
	c.Options.ConfigureArgs = slices.Clone(n.Options.ConfigureArgs)
	c.Options.BuildArgs = slices.Clone(n.Options.BuildArgs)
	c.Options.Env = maps.Clone(n.Options.Env)
	return c
}

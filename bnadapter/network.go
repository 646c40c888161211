package bnadapter

import (
	"fmt"
	"sort"

	"github.com/bnlattice/bnlattice/core"
	"github.com/bnlattice/bnlattice/dfs"
	"github.com/bnlattice/bnlattice/factor"
)

// Network is a reference BNAdapter built up one variable at a time: a
// name, its declared states, its parent variables, and a CPT whose
// scope is exactly {V} ∪ parents(V). Parent structure is tracked as a
// directed core.Graph so cycle detection and elimination-order
// derivation reuse the dfs package rather than reimplementing graph
// traversal here.
type Network struct {
	dag   *core.Graph
	nodes map[string]NodeInfo
}

// NewNetwork returns an empty Network.
func NewNetwork() *Network {
	return &Network{
		dag:   core.NewGraph(core.WithDirected(true)),
		nodes: make(map[string]NodeInfo),
	}
}

// AddVariable declares variable v with the given states and parents,
// backed by cpt. parents must already have been added. cpt's scope
// must be exactly {v} ∪ parents, in any order.
func (n *Network) AddVariable(v string, states []string, parents []string, cpt *factor.Factor) error {
	if _, exists := n.nodes[v]; exists {
		return fmt.Errorf("bnadapter.Network.AddVariable: %q: %w", v, ErrDuplicateVariable)
	}
	for _, p := range parents {
		if _, ok := n.nodes[p]; !ok {
			return fmt.Errorf("bnadapter.Network.AddVariable: %q references undeclared parent %q: %w", v, p, ErrUnknownParent)
		}
	}

	want := make(map[string]bool, len(parents)+1)
	want[v] = true
	for _, p := range parents {
		want[p] = true
	}
	scope := cpt.Scope()
	if len(scope) != len(want) {
		return fmt.Errorf("bnadapter.Network.AddVariable: %q: cpt scope %v, want %d variables: %w", v, scope, len(want), ErrScopeMismatch)
	}
	for _, s := range scope {
		if !want[s] {
			return fmt.Errorf("bnadapter.Network.AddVariable: %q: cpt scope %v is not {%s}∪parents: %w", v, scope, v, ErrScopeMismatch)
		}
	}

	if err := n.dag.AddVertex(v); err != nil {
		return fmt.Errorf("bnadapter.Network.AddVariable: %w", err)
	}
	for _, p := range parents {
		if _, err := n.dag.AddEdge(p, v, 0); err != nil {
			return fmt.Errorf("bnadapter.Network.AddVariable: linking parent %q: %w", p, err)
		}
	}

	n.nodes[v] = NodeInfo{
		CPT:     cpt,
		States:  append([]string(nil), states...),
		Parents: append([]string(nil), parents...),
		Vars:    want,
	}
	return nil
}

// Validate reports whether the declared parent structure is acyclic.
func (n *Network) Validate() error {
	hasCycle, cycles, err := dfs.DetectCycles(n.dag)
	if err != nil {
		return fmt.Errorf("bnadapter.Network.Validate: %w", err)
	}
	if hasCycle {
		return fmt.Errorf("bnadapter.Network.Validate: cycles %v: %w", cycles, ErrCyclicNetwork)
	}
	return nil
}

// Nodes implements BNAdapter.
func (n *Network) Nodes() map[string]NodeInfo {
	out := make(map[string]NodeInfo, len(n.nodes))
	for v, info := range n.nodes {
		out[v] = info
	}
	return out
}

// MoralizeGraph implements BNAdapter: it returns every parent-child
// edge plus a marrying edge between every pair of co-parents of a
// common child, deduplicated and returned in a deterministic order.
func (n *Network) MoralizeGraph() ([]Edge, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[[2]string]bool)
	var edges []Edge
	add := func(a, b string) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		key := [2]string{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, Edge{A: a, B: b})
	}

	for v, info := range n.nodes {
		for _, p := range info.Parents {
			add(p, v)
		}
		for i := 0; i < len(info.Parents); i++ {
			for j := i + 1; j < len(info.Parents); j++ {
				add(info.Parents[i], info.Parents[j])
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges, nil
}

// GetNodeEliminationOrder implements BNAdapter: it eliminates leaves of
// the DAG before their ancestors, by reversing a topological sort of
// the parent structure.
func (n *Network) GetNodeEliminationOrder() ([]string, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	topo, err := dfs.TopologicalSort(n.dag)
	if err != nil {
		return nil, fmt.Errorf("bnadapter.Network.GetNodeEliminationOrder: %w", err)
	}
	order := make([]string, len(topo))
	for i, v := range topo {
		order[len(topo)-1-i] = v
	}
	return order, nil
}

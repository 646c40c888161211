package bnadapter

import "github.com/bnlattice/bnlattice/factor"

// NodeInfo describes one variable of a Bayesian network as the junction
// tree needs to see it: its CPT, its declared state
// labels, its parent variables, and the set of variables its CPT's
// scope spans ({V} ∪ parents(V)).
type NodeInfo struct {
	CPT     *factor.Factor
	States  []string
	Parents []string
	Vars    map[string]bool
}

// Edge is an undirected pair of variable names, as produced by
// MoralizeGraph.
type Edge struct {
	A, B string
}

// BNAdapter is the interface the junction tree consumes a Bayesian
// network through. No other BN facility is required
// by the core inference algorithms.
type BNAdapter interface {
	// Nodes returns every variable's NodeInfo, keyed by variable name.
	Nodes() map[string]NodeInfo

	// MoralizeGraph returns the undirected edge set of the moralized
	// DAG: every parent-child edge plus a "marrying" edge between every
	// pair of co-parents of a common child.
	MoralizeGraph() ([]Edge, error)

	// GetNodeEliminationOrder returns a total order over variables
	// suitable for triangulation.
	GetNodeEliminationOrder() ([]string, error)
}

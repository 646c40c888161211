package jtree

import (
	"github.com/bnlattice/bnlattice/core"
	"github.com/bnlattice/bnlattice/factor"
)

// TreeNode is one cluster of the junction tree: a set of variables
// (Cluster) and the factors assigned to it — CPTs whose scope the
// cluster covers, plus trivial unit factors padding out variables the
// cluster carries but no CPT is homed at. Variable indicators (the
// evidence-carrying factors) are NOT stored here directly; they live in
// JunctionTree.indicators and are looked up live by HomedVars so that
// setting evidence never has to chase down shared pointers (see
// JunctionTree.localProduct).
type TreeNode struct {
	Label         string
	Cluster       []string
	staticFactors []*factor.Factor          // assigned CPTs + trivial padding
	HomedVars     []string                  // variables whose indicator is attached here
	cache         map[string]*factor.Factor // keyed by upstream edge ID; "" = unprojected full pull
}

// TreeEdge connects two clusters of the junction tree. Separator is
// set from the running-intersection property at construction time and
// recomputed by EnsureCluster for edges between clusters it widens. The
// tree's nodes and edges never change once built.
type TreeEdge struct {
	ID         string
	NodeA      string
	NodeB      string
	Separator  []string
}

// Other returns the endpoint of e that is not label.
func (e *TreeEdge) Other(label string) string {
	if e.NodeA == label {
		return e.NodeB
	}
	return e.NodeA
}

// JunctionTree is a persistent cluster tree over a Bayesian network,
// built once via Build and then queried and updated in place.
type JunctionTree struct {
	nodes      map[string]*TreeNode
	edges      map[string]*TreeEdge
	nodeOrder  []string             // construction order, root last
	incident   map[string][]string  // node label -> incident edge IDs
	varHome    map[string]string    // variable -> node label holding its CPT
	varStates  map[string][]string  // variable -> declared states
	indicators map[string]*factor.Factor  // variable -> current evidence indicator
	varNodes   map[string]map[string]bool // variable -> set of node labels whose cluster contains it
	graph      *core.Graph                // tree topology: vertices = node labels, one edge per TreeEdge (core-generated IDs)
}

// Nodes returns the tree's cluster labels, in construction order (the
// last entry is the root of the pull tree: the cluster with no
// upstream edge).
func (jt *JunctionTree) Nodes() []string {
	out := make([]string, len(jt.nodeOrder))
	copy(out, jt.nodeOrder)
	return out
}

// Cluster returns the variable set of the named node.
func (jt *JunctionTree) Cluster(label string) ([]string, bool) {
	n, ok := jt.nodes[label]
	if !ok {
		return nil, false
	}
	out := make([]string, len(n.Cluster))
	copy(out, n.Cluster)
	return out, true
}

// Edges returns the tree's edges.
func (jt *JunctionTree) Edges() []*TreeEdge {
	out := make([]*TreeEdge, 0, len(jt.edges))
	for _, e := range jt.edges {
		out = append(out, e)
	}
	return out
}

// HomeOf returns the node label holding variable v's CPT, and whether v
// is known to the tree at all.
func (jt *JunctionTree) HomeOf(v string) (string, bool) {
	label, ok := jt.varHome[v]
	return label, ok
}

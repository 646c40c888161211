package jtree

import (
	"fmt"

	"github.com/bnlattice/bnlattice/bfs"
	"github.com/bnlattice/bnlattice/factor"
)

// localProduct returns the product of a node's static factors (CPTs
// and padding) with the current live indicator for every variable
// homed there. Indicators are looked up from jt.indicators rather than
// stored in the node itself, so set_evidence_* never has to chase down
// shared pointers — replacing the map entry is enough.
func (jt *JunctionTree) localProduct(label string) (*factor.Factor, error) {
	node := jt.nodes[label]
	factors := make([]*factor.Factor, 0, len(node.staticFactors)+len(node.HomedVars))
	factors = append(factors, node.staticFactors...)
	for _, v := range node.HomedVars {
		factors = append(factors, jt.indicators[v])
	}
	product, err := factor.MultiplyAll(factors)
	if err != nil {
		return nil, fmt.Errorf("jtree: combining local factors at %q: %w", label, err)
	}
	return product, nil
}

// pull computes the product of node's local factors with incoming
// messages from every neighbor reached via an edge other than
// upstreamEdgeID. If upstreamEdgeID is non-empty, the result is
// projected onto that edge's separator before being cached and
// returned — this is the message the node sends to its upstream
// neighbor. The top-level call (upstreamEdgeID == "") returns the full,
// unprojected product, which is what queries want.
func (jt *JunctionTree) pull(label string, upstreamEdgeID string) (*factor.Factor, error) {
	node := jt.nodes[label]
	if cached, ok := node.cache[upstreamEdgeID]; ok {
		return cached, nil
	}

	product, err := jt.localProduct(label)
	if err != nil {
		return nil, err
	}

	for _, edgeID := range jt.incident[label] {
		if edgeID == upstreamEdgeID {
			continue
		}
		edge := jt.edges[edgeID]
		neighbor := edge.Other(label)
		msg, err := jt.pull(neighbor, edgeID)
		if err != nil {
			return nil, err
		}
		product, err = factor.Multiply(product, msg)
		if err != nil {
			return nil, fmt.Errorf("jtree: multiplying message from %q into %q: %w", neighbor, label, err)
		}
	}

	if upstreamEdgeID != "" {
		edge := jt.edges[upstreamEdgeID]
		product, err = product.Project(edge.Separator)
		if err != nil {
			return nil, fmt.Errorf("jtree: projecting message %q->%q onto separator: %w", label, edge.Other(label), err)
		}
	}

	node.cache[upstreamEdgeID] = product
	return product, nil
}

// invalidateCaches clears every node's message cache. Called by every
// evidence mutator, since an indicator change can affect any message in
// the tree.
func (jt *JunctionTree) invalidateCaches() {
	for _, node := range jt.nodes {
		node.cache = make(map[string]*factor.Factor)
	}
}

// recomputeSeparator derives edge e's separator as the intersection of
// the variable sets reachable on each side of e without crossing it —
// not a naive intersection of the two adjacent clusters, which only
// coincides with this in a path graph. Used after ensure_cluster
// extends cluster coverage along a path, since the edges on that path
// may now need a wider separator.
func (jt *JunctionTree) recomputeSeparator(edgeID string) error {
	edge, ok := jt.edges[edgeID]
	if !ok {
		return fmt.Errorf("jtree.recomputeSeparator: %w", ErrUnknownNode)
	}
	sideA, err := jt.reachableUnion(edge.NodeA, edgeID)
	if err != nil {
		return err
	}
	sideB, err := jt.reachableUnion(edge.NodeB, edgeID)
	if err != nil {
		return err
	}

	var sep []string
	for v := range sideA {
		if sideB[v] {
			sep = append(sep, v)
		}
	}
	edge.Separator = sep
	return nil
}

// reachableUnion returns the union of cluster variables over every node
// reachable from start without crossing edgeID.
func (jt *JunctionTree) reachableUnion(start, blockEdgeID string) (map[string]bool, error) {
	blocked := jt.edges[blockEdgeID]
	result, err := bfs.BFS(jt.graph, start, bfs.WithFilterNeighbor(func(curr, neighbor string) bool {
		return !((curr == blocked.NodeA && neighbor == blocked.NodeB) || (curr == blocked.NodeB && neighbor == blocked.NodeA))
	}))
	if err != nil {
		return nil, fmt.Errorf("jtree.reachableUnion: %w", err)
	}
	union := make(map[string]bool)
	for _, label := range result.Order {
		for _, v := range jt.nodes[label].Cluster {
			union[v] = true
		}
	}
	return union, nil
}

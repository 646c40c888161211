package jtree

import (
	"fmt"
	"sort"

	"github.com/bnlattice/bnlattice/bnadapter"
	"github.com/bnlattice/bnlattice/core"
	"github.com/bnlattice/bnlattice/factor"
)

// Build constructs a JunctionTree from a BNAdapter: moralize, then
// triangulate-while-clustering along the adapter's elimination order,
// prune to the maximal cliques, link the clusters via the
// running-intersection property, and finally assign every variable's
// CPT (plus an evidence indicator) to its home cluster, padding out the
// rest of each cluster with trivial unit factors.
func Build(adapter bnadapter.BNAdapter) (*JunctionTree, error) {
	nodesInfo := adapter.Nodes()
	moralEdges, err := adapter.MoralizeGraph()
	if err != nil {
		return nil, fmt.Errorf("jtree.Build: moralizing: %w", err)
	}
	order, err := adapter.GetNodeEliminationOrder()
	if err != nil {
		return nil, fmt.Errorf("jtree.Build: elimination order: %w", err)
	}

	moral := core.NewGraph()
	for v := range nodesInfo {
		if err := moral.AddVertex(v); err != nil {
			return nil, fmt.Errorf("jtree.Build: %w", err)
		}
	}
	for _, e := range moralEdges {
		if _, err := moral.AddEdge(e.A, e.B, 0); err != nil {
			return nil, fmt.Errorf("jtree.Build: adding moral edge %s-%s: %w", e.A, e.B, err)
		}
	}

	clusters := make([][]string, 0, len(order))
	for _, x := range order {
		neighbors, err := moral.NeighborIDs(x)
		if err != nil {
			return nil, fmt.Errorf("jtree.Build: triangulating %q: %w", x, err)
		}
		cluster := append([]string{x}, neighbors...)
		sort.Strings(cluster)
		clusters = append(clusters, cluster)

		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if !moral.HasEdge(neighbors[i], neighbors[j]) {
					if _, err := moral.AddEdge(neighbors[i], neighbors[j], 0); err != nil {
						return nil, fmt.Errorf("jtree.Build: fill-in %s-%s: %w", neighbors[i], neighbors[j], err)
					}
				}
			}
		}
		if err := moral.RemoveVertex(x); err != nil {
			return nil, fmt.Errorf("jtree.Build: %w", err)
		}
	}

	kept := pruneSubsumedClusters(clusters)
	m := len(kept)
	labels := make([]string, m)
	for i := range kept {
		labels[i] = fmt.Sprintf("n%d", i)
	}

	jt := &JunctionTree{
		nodes:      make(map[string]*TreeNode, m),
		edges:      make(map[string]*TreeEdge),
		nodeOrder:  labels,
		incident:   make(map[string][]string, m),
		varHome:    make(map[string]string),
		varStates:  make(map[string][]string),
		indicators: make(map[string]*factor.Factor),
		varNodes:   make(map[string]map[string]bool),
		graph:      core.NewGraph(),
	}
	for i, label := range labels {
		jt.nodes[label] = &TreeNode{
			Label:   label,
			Cluster: append([]string(nil), kept[i]...),
			cache:   make(map[string]*factor.Factor),
		}
		if err := jt.graph.AddVertex(label); err != nil {
			return nil, fmt.Errorf("jtree.Build: %w", err)
		}
		for _, v := range kept[i] {
			jt.addVarNode(v, label)
		}
	}

	if err := jt.linkClusters(kept, labels); err != nil {
		return nil, err
	}

	for v, info := range nodesInfo {
		jt.varStates[v] = append([]string(nil), info.States...)
		scope := info.CPT.Scope()

		home := ""
		for _, label := range labels {
			if isSubset(scope, jt.nodes[label].Cluster) {
				home = label
				break
			}
		}
		if home == "" {
			return nil, fmt.Errorf("jtree.Build: no cluster covers scope %v of variable %q: %w", scope, v, ErrTriangulation)
		}

		node := jt.nodes[home]
		node.staticFactors = append(node.staticFactors, info.CPT)
		node.HomedVars = append(node.HomedVars, v)
		jt.varHome[v] = home

		ind, err := onesFactor(v, info.States)
		if err != nil {
			return nil, fmt.Errorf("jtree.Build: building indicator for %q: %w", v, err)
		}
		jt.indicators[v] = ind
	}

	for _, label := range labels {
		node := jt.nodes[label]
		covered := make(map[string]bool)
		for _, f := range node.staticFactors {
			for _, s := range f.Scope() {
				covered[s] = true
			}
		}
		for _, w := range node.Cluster {
			if covered[w] {
				continue
			}
			states, ok := jt.varStates[w]
			if !ok {
				return nil, fmt.Errorf("jtree.Build: cluster %q names unknown variable %q", label, w)
			}
			pad, err := onesFactor(w, states)
			if err != nil {
				return nil, fmt.Errorf("jtree.Build: padding %q at %q: %w", w, label, err)
			}
			node.staticFactors = append(node.staticFactors, pad)
		}
	}

	return jt, nil
}

// addVarNode records that variable v's cluster coverage includes label.
func (jt *JunctionTree) addVarNode(v, label string) {
	if jt.varNodes[v] == nil {
		jt.varNodes[v] = make(map[string]bool)
	}
	jt.varNodes[v][label] = true
}

// pruneSubsumedClusters implements the maximal-cluster reduction:
// reverse-iterate the clusters, and whenever C_i is a subset of some
// later C_j, drop C_i. Repeat until no more drops happen. The surviving
// clusters keep their original relative order (their originating
// elimination step).
func pruneSubsumedClusters(clusters [][]string) [][]string {
	n := len(clusters)
	kept := make([]bool, n)
	for i := range kept {
		kept[i] = true
	}
	for changed := true; changed; {
		changed = false
		for i := n - 1; i >= 0; i-- {
			if !kept[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !kept[j] {
					continue
				}
				if isSubset(clusters[i], clusters[j]) {
					kept[i] = false
					changed = true
					break
				}
			}
		}
	}
	var out [][]string
	for i, ok := range kept {
		if ok {
			out = append(out, clusters[i])
		}
	}
	return out
}

// linkClusters connects clusters via the running-intersection property:
// processing from last to first, cluster i is linked to the first
// (lowest-index) later cluster whose contents superset cluster(i)'s
// intersection with the union of all later clusters.
func (jt *JunctionTree) linkClusters(clusters [][]string, labels []string) error {
	m := len(clusters)
	suffixUnion := make([]map[string]bool, m+1)
	suffixUnion[m] = map[string]bool{}
	for i := m - 1; i >= 0; i-- {
		u := make(map[string]bool, len(suffixUnion[i+1])+len(clusters[i]))
		for v := range suffixUnion[i+1] {
			u[v] = true
		}
		for _, v := range clusters[i] {
			u[v] = true
		}
		suffixUnion[i] = u
	}

	edgeSeq := 0
	for i := m - 1; i >= 0; i-- {
		if i == m-1 {
			continue // root: no later cluster to attach to
		}
		var overlap []string
		for _, v := range clusters[i] {
			if suffixUnion[i+1][v] {
				overlap = append(overlap, v)
			}
		}

		target := -1
		for j := i + 1; j < m; j++ {
			if isSubset(overlap, clusters[j]) {
				target = j
				break
			}
		}
		if target < 0 {
			return fmt.Errorf("jtree.Build: cluster %d has no downstream superset of %v: %w", i, overlap, ErrTriangulation)
		}

		sep := append([]string(nil), overlap...)
		sort.Strings(sep)
		id := fmt.Sprintf("te%d", edgeSeq)
		edgeSeq++
		e := &TreeEdge{ID: id, NodeA: labels[i], NodeB: labels[target], Separator: sep}
		jt.edges[id] = e
		jt.incident[e.NodeA] = append(jt.incident[e.NodeA], id)
		jt.incident[e.NodeB] = append(jt.incident[e.NodeB], id)
		if _, err := jt.graph.AddEdge(e.NodeA, e.NodeB, 0); err != nil {
			return fmt.Errorf("jtree.Build: linking %s-%s: %w", e.NodeA, e.NodeB, err)
		}
	}
	return nil
}

// isSubset reports whether every element of sub appears in super.
func isSubset(sub, super []string) bool {
	set := make(map[string]bool, len(super))
	for _, v := range super {
		set[v] = true
	}
	for _, v := range sub {
		if !set[v] {
			return false
		}
	}
	return true
}

// onesFactor returns a trivial unit factor over variable v with the
// given declared states: every entry is 1.
func onesFactor(v string, states []string) (*factor.Factor, error) {
	data := make([]float64, len(states))
	for i := range data {
		data[i] = 1
	}
	return factor.New([]string{v}, map[string][]string{v: states}, data)
}

package jtree

import (
	"fmt"
	"sort"

	"github.com/bnlattice/bnlattice/bfs"
	"github.com/bnlattice/bnlattice/factor"
)

// GetMarginal returns the normalized marginal distribution over a single
// variable, reflecting whatever evidence is currently set.
func (jt *JunctionTree) GetMarginal(v string) (*factor.Factor, error) {
	home, ok := jt.varHome[v]
	if !ok {
		return nil, fmt.Errorf("jtree.GetMarginal: %q: %w", v, ErrUnknownVariable)
	}
	full, err := jt.pull(home, "")
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginal: %w", err)
	}
	projected, err := full.Project([]string{v})
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginal: %w", err)
	}
	normalized, err := projected.Normalize()
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginal: %w", err)
	}
	return normalized, nil
}

// GetMarginals returns the joint marginal over vars as a CPT with no
// conditioning variables, reflecting whatever evidence is currently set.
// It calls EnsureCluster first, so vars that no single cluster covers
// widen the tree's clusters before the projection.
func (jt *JunctionTree) GetMarginals(vars []string) (*factor.CPT, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("jtree.GetMarginals: no variables requested")
	}
	home, err := jt.EnsureCluster(vars)
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginals: %w", err)
	}
	full, err := jt.pull(home, "")
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginals: %w", err)
	}
	projected, err := full.Project(vars)
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginals: %w", err)
	}
	normalized, err := projected.Normalize()
	if err != nil {
		return nil, fmt.Errorf("jtree.GetMarginals: %w", err)
	}
	return factor.NewCPT(normalized, vars)
}

// EnsureCluster guarantees that some single cluster's variable set covers
// every name in vars, returning its label. If no existing cluster already
// qualifies, it walks the tree paths connecting a cluster home for each
// variable and widens every cluster on those paths to carry the full set,
// padding each with trivial factors for the variables it gains and
// recomputing the separators of the edges it touches. The result stays a
// valid junction tree: widening a contiguous run of clusters along tree
// paths cannot break the running-intersection property for any variable,
// since each variable's already-connected subtree only grows by clusters
// adjacent to it.
func (jt *JunctionTree) EnsureCluster(vars []string) (string, error) {
	if len(vars) == 0 {
		return "", fmt.Errorf("jtree.EnsureCluster: no variables requested")
	}
	for _, v := range vars {
		if _, ok := jt.varStates[v]; !ok {
			return "", fmt.Errorf("jtree.EnsureCluster: %q: %w", v, ErrUnknownVariable)
		}
	}

	if home := jt.singleClusterCovering(vars); home != "" {
		return home, nil
	}

	start, ok := jt.varHome[vars[0]]
	if !ok {
		return "", fmt.Errorf("jtree.EnsureCluster: %q: %w", vars[0], ErrUnknownVariable)
	}
	bfsResult, err := bfs.BFS(jt.graph, start)
	if err != nil {
		return "", fmt.Errorf("jtree.EnsureCluster: %w", err)
	}

	touched := map[string]bool{start: true}
	for _, v := range vars[1:] {
		target := jt.nearestCovering(v, bfsResult)
		if target == "" {
			return "", fmt.Errorf("jtree.EnsureCluster: no cluster carries %q: %w", v, ErrNoPath)
		}
		path, err := bfsResult.PathTo(target)
		if err != nil || len(path) == 0 {
			return "", fmt.Errorf("jtree.EnsureCluster: %w", ErrNoPath)
		}
		for _, label := range path {
			touched[label] = true
		}
	}

	for label := range touched {
		jt.widenCluster(label, vars)
	}
	for _, edge := range jt.edges {
		if touched[edge.NodeA] && touched[edge.NodeB] {
			if err := jt.recomputeSeparator(edge.ID); err != nil {
				return "", fmt.Errorf("jtree.EnsureCluster: %w", err)
			}
		}
	}
	jt.invalidateCaches()
	return start, nil
}

// singleClusterCovering returns a cluster label already containing every
// name in vars, or "" if none does.
func (jt *JunctionTree) singleClusterCovering(vars []string) string {
	var candidates map[string]bool
	for i, v := range vars {
		homes := jt.varNodes[v]
		if i == 0 {
			candidates = make(map[string]bool, len(homes))
			for label := range homes {
				candidates[label] = true
			}
			continue
		}
		for label := range candidates {
			if !homes[label] {
				delete(candidates, label)
			}
		}
	}
	var labels []string
	for label := range candidates {
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return ""
	}
	sort.Strings(labels)
	return labels[0]
}

// nearestCovering returns the shallowest (by BFS depth) node known to
// carry v, or "" if none does.
func (jt *JunctionTree) nearestCovering(v string, result *bfs.BFSResult) string {
	best := ""
	bestDepth := -1
	for label := range jt.varNodes[v] {
		depth, ok := result.Depth[label]
		if !ok {
			continue
		}
		if best == "" || depth < bestDepth {
			best, bestDepth = label, depth
		}
	}
	return best
}

// widenCluster adds any of vars missing from label's cluster, padding the
// node's static factors with a trivial unit factor for each newly gained
// variable.
func (jt *JunctionTree) widenCluster(label string, vars []string) {
	node := jt.nodes[label]
	present := make(map[string]bool, len(node.Cluster))
	for _, w := range node.Cluster {
		present[w] = true
	}
	for _, v := range vars {
		if present[v] {
			continue
		}
		node.Cluster = append(node.Cluster, v)
		present[v] = true
		jt.addVarNode(v, label)
		if pad, err := onesFactor(v, jt.varStates[v]); err == nil {
			node.staticFactors = append(node.staticFactors, pad)
		}
	}
	sort.Strings(node.Cluster)
}

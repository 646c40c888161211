package bag

import (
	"sort"

	"github.com/bnlattice/bnlattice/factor"
)

// OrderStrategy chooses the sequence in which Eliminate sums variables
// out of factors, given the working factor list and the set of query
// variables (which must never be chosen).
type OrderStrategy func(factors []*factor.Factor, q map[string]bool) []string

// DiscoveryOrder is the default strategy: it lists every variable not in
// q in the order it is first encountered while scanning factors in
// their given list order, and within each factor in that factor's scope
// order. It costs nothing to compute and matches the traversal a human
// would do by hand, at the expense of producing larger intermediate
// factors than a width-aware heuristic would for wide networks.
func DiscoveryOrder(factors []*factor.Factor, q map[string]bool) []string {
	seen := make(map[string]bool)
	var order []string
	for _, f := range factors {
		for _, v := range f.Scope() {
			if q[v] || seen[v] {
				continue
			}
			seen[v] = true
			order = append(order, v)
		}
	}
	return order
}

// MinFillOrder greedily eliminates, at each step, whichever eligible
// variable requires the fewest fill-in edges among those of its
// neighbors in the current interaction graph that are still awaiting
// elimination (two variables are neighbors if some surviving factor's
// scope contains both; query variables and already-eliminated variables
// are not counted). Ties break on variable name
// for determinism. This keeps intermediate factor width down on
// networks where DiscoveryOrder would multiply unrelated clusters
// together early.
func MinFillOrder(factors []*factor.Factor, q map[string]bool) []string {
	neighbors := make(map[string]map[string]bool)
	ensure := func(v string) map[string]bool {
		if neighbors[v] == nil {
			neighbors[v] = make(map[string]bool)
		}
		return neighbors[v]
	}
	for _, f := range factors {
		scope := f.Scope()
		for i, v := range scope {
			ensure(v)
			for j, w := range scope {
				if i != j {
					ensure(v)[w] = true
				}
			}
		}
	}

	var eligible []string
	for v := range neighbors {
		if !q[v] {
			eligible = append(eligible, v)
		}
	}
	sort.Strings(eligible)

	var order []string
	remaining := make(map[string]bool, len(eligible))
	for _, v := range eligible {
		remaining[v] = true
	}

	fillCount := func(v string) int {
		ns := make([]string, 0, len(neighbors[v]))
		for w := range neighbors[v] {
			if remaining[w] {
				ns = append(ns, w)
			}
		}
		missing := 0
		for i := 0; i < len(ns); i++ {
			for j := i + 1; j < len(ns); j++ {
				if !neighbors[ns[i]][ns[j]] {
					missing++
				}
			}
		}
		return missing
	}

	for len(remaining) > 0 {
		var candidates []string
		for v := range remaining {
			candidates = append(candidates, v)
		}
		sort.Strings(candidates)

		best := candidates[0]
		bestFill := fillCount(best)
		for _, v := range candidates[1:] {
			if c := fillCount(v); c < bestFill {
				best, bestFill = v, c
			}
		}

		ns := make([]string, 0, len(neighbors[best]))
		for w := range neighbors[best] {
			if remaining[w] {
				ns = append(ns, w)
			}
		}
		for i := 0; i < len(ns); i++ {
			for j := i + 1; j < len(ns); j++ {
				ensure(ns[i])[ns[j]] = true
				ensure(ns[j])[ns[i]] = true
			}
		}

		order = append(order, best)
		delete(remaining, best)
	}

	return order
}

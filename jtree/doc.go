// Package jtree implements a persistent junction tree over a discrete
// Bayesian network: a cluster tree built once via moralization,
// triangulation, and clustering, then queried repeatedly via pull-based
// message passing. Unlike bag, which discards all intermediate state
// after a single query, a JunctionTree amortizes construction across
// many marginal queries and supports setting, changing, and retracting
// evidence in place.
//
// Construction follows spec section 4.3: moralize, triangulate while
// clustering, prune to the maximal cliques, link clusters via the
// running-intersection property, then assign each variable's CPT (and
// an all-ones evidence indicator) to its home cluster. Message passing
// is a single acyclic pull per query; evidence mutators invalidate the
// whole tree's message cache, the only global side effect any mutation
// has.
package jtree

// Package bnlattice performs exact probabilistic inference on discrete
// Bayesian networks.
//
// Given a collection of conditional probability tables (CPTs) over
// categorical random variables and a query of the form P(Q | E=e), the
// engine computes the posterior distribution exactly, without sampling
// or approximation.
//
// The engine is built from four packages:
//
//   - factor/    — dense, mixed-radix probability tables and the algebra
//     over them: multiply, add, sum-out, project, evidence, normalize.
//   - bag/       — one-shot variable elimination over a set of factors.
//   - jtree/     — a persistent junction tree that amortizes inference
//     across repeated queries and supports evidence retraction.
//   - bnadapter/ — the narrow interface the junction tree uses
//     to consume a Bayesian network (CPTs, moral edges, elimination order)
//     without owning how that network was built or loaded.
//
// Supporting substrate, adapted from generic graph utilities:
//
//	core/ — thread-safe Graph/Vertex/Edge primitives, used to represent
//	        both the moralized-and-triangulated working graph during
//	        junction-tree construction and the cluster tree itself.
//	bfs/  — breadth-first search over core.Graph, used by jtree to walk
//	        the shortest path between clusters when extending coverage.
//	dfs/  — depth-first traversal, used by bnadapter to validate DAG
//	        acyclicity and to derive a default elimination order.
//
// Out of scope: loading networks from serialized form, rendering, CLI
// surfaces, approximate inference, continuous variables, and parameter
// learning. See SPEC_FULL.md for the full requirements this module
// implements and DESIGN.md for how each part is grounded.
package bnlattice

// Package bag implements one-shot variable elimination over a set of
// factors: the "Bag" engine from the module's design — a flat bag of
// CPTs with no persistent structure, suited to answering a single query
// and then being discarded (contrast jtree, which amortizes repeated
// queries over a persistent cluster tree).
//
// Eliminate drives the core algorithm; ComputePosterior layers the
// query/evidence vocabulary (distributional query vars, point query
// values, distributional evidence vars, hard evidence values) on top of
// it, matching the original implementation's compute_posterior contract.
package bag

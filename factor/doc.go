// Package factor implements discrete, multi-dimensional probability
// tables and the algebra over them: construction, indexing, pointwise
// multiply/add/divide, summing out, projection, evidence application,
// normalization, and dict (de)serialization.
//
// A Factor is a dense array indexed by the Cartesian product of the
// state sequences of an ordered scope (row-major, leftmost scope
// variable varies slowest). It is the numeric kernel every higher
// operation in this module — variable elimination in bag, message
// passing in jtree — compiles down to.
//
// Factors are immutable: every operation that would change scope,
// states, or data returns a new *Factor rather than mutating the
// receiver. The one mutable factor-like value in the module is the
// evidence indicator owned by jtree, and even that only ever replaces
// its entries, never its scope.
package factor

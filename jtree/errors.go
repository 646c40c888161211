package jtree

import "errors"

// Sentinel errors for the jtree package.
var (
	// ErrTriangulation indicates the supplied elimination order did not
	// yield a valid tree decomposition: some pruned cluster's
	// running-intersection requirement could not be satisfied by any
	// later cluster.
	ErrTriangulation = errors.New("jtree: elimination order does not yield a tree decomposition")

	// ErrUnknownVariable indicates a query or evidence call named a
	// variable the tree has no record of.
	ErrUnknownVariable = errors.New("jtree: variable not present in this tree")

	// ErrInvalidState indicates evidence named a state not declared for
	// its variable.
	ErrInvalidState = errors.New("jtree: value is not a declared state")

	// ErrUnknownNode indicates a node label that does not exist in the
	// tree, typically from caller-supplied construction data.
	ErrUnknownNode = errors.New("jtree: node not present in this tree")

	// ErrNoPath indicates ensure_cluster could not find a path in the
	// tree to a node holding a required variable, which would indicate
	// a broken tree (disconnected) rather than a normal runtime error.
	ErrNoPath = errors.New("jtree: no path between clusters")
)

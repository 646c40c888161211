package bnadapter

import "errors"

// Sentinel errors for the bnadapter package.
var (
	// ErrDuplicateVariable indicates AddVariable was called twice for the
	// same variable name.
	ErrDuplicateVariable = errors.New("bnadapter: variable already declared")

	// ErrUnknownParent indicates a variable names a parent that has not
	// itself been declared via AddVariable.
	ErrUnknownParent = errors.New("bnadapter: parent variable not declared")

	// ErrScopeMismatch indicates a CPT's scope does not equal {V} ∪ parents(V).
	ErrScopeMismatch = errors.New("bnadapter: CPT scope does not match variable and parents")

	// ErrCyclicNetwork indicates the declared parent/child structure
	// contains a directed cycle, so it is not a valid Bayesian network.
	ErrCyclicNetwork = errors.New("bnadapter: parent structure contains a cycle")

	// ErrUnknownVariable indicates a lookup for a variable that was never
	// declared via AddVariable.
	ErrUnknownVariable = errors.New("bnadapter: variable not declared")
)

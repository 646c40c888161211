package factor

import "errors"

// Sentinel errors for the factor package. Algorithms return these
// directly, or wrap them with fmt.Errorf("context: %w", ErrX) at the
// call boundary; callers should match with errors.Is.
var (
	// ErrShape indicates a data length that does not match the product
	// of state-set sizes on factor construction.
	ErrShape = errors.New("factor: data length does not match product of state sizes")

	// ErrInvalidState indicates an evidence or index value names a state
	// not declared for its variable.
	ErrInvalidState = errors.New("factor: value is not a declared state")

	// ErrNotInScope indicates a requested variable is absent from a
	// factor's scope during sum-out, project, or indexing.
	ErrNotInScope = errors.New("factor: variable not in scope")

	// ErrScopeMismatch indicates an operation between factors that
	// disagree on the state sequence of a shared variable, or a
	// reorder/assignment that is not a permutation of the scope.
	ErrScopeMismatch = errors.New("factor: scope mismatch")

	// ErrZeroMass indicates normalization was attempted on a factor
	// whose entries sum to zero. CPT.Validate also wraps it when a
	// conditioning slice does not sum to 1.
	ErrZeroMass = errors.New("factor: total mass is zero")

	// ErrDivideByZero indicates a pointwise division x/0 with x != 0;
	// 0/0 is defined as 0 per the module's message-passing convention.
	ErrDivideByZero = errors.New("factor: division by zero with nonzero numerator")

	// ErrNegativeEntry indicates a negative value was supplied where
	// factor entries must be non-negative.
	ErrNegativeEntry = errors.New("factor: negative entry")
)

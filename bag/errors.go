package bag

import "errors"

// Sentinel errors for the bag package.
var (
	// ErrEmptyBag indicates an operation that requires at least one
	// factor was attempted on a Bag with none.
	ErrEmptyBag = errors.New("bag: no factors")

	// ErrInconsistentEvidence indicates the supplied evidence assigns
	// zero probability to every remaining outcome, so a posterior
	// cannot be normalized or a conditional cannot be formed.
	ErrInconsistentEvidence = errors.New("bag: evidence is inconsistent with the model")

	// ErrUnknownVariable indicates a query or evidence variable that
	// does not appear in any factor carried by the Bag.
	ErrUnknownVariable = errors.New("bag: variable not present in any factor")
)

package factor

import "fmt"

// CPT is a Factor tagged with a partition of its scope into conditioned
// variables (the variable(s) the table gives a distribution over) and
// conditioning variables (the parents it is conditioned on). For a
// variable V with parents Pa(V), a well-formed CPT represents
// P(V | Pa(V)): for every assignment of Pa(V), the entries over V sum to
// 1 — but NewCPT only records the partition; call Validate to check it.
type CPT struct {
	*Factor
	Conditioned  []string
	Conditioning []string
}

// NewCPT tags f with conditioned as the conditioned variables; every
// other scope variable becomes a conditioning variable, in the order it
// appears in f's scope. Every entry of conditioned must be in f's scope.
func NewCPT(f *Factor, conditioned []string) (*CPT, error) {
	want := make(map[string]bool, len(conditioned))
	for _, v := range conditioned {
		if !f.HasVar(v) {
			return nil, fmt.Errorf("factor.NewCPT: conditioned variable %q not in scope: %w", v, ErrNotInScope)
		}
		want[v] = true
	}
	var conditioning []string
	for _, v := range f.scope {
		if !want[v] {
			conditioning = append(conditioning, v)
		}
	}
	return &CPT{
		Factor:       f,
		Conditioned:  append([]string(nil), conditioned...),
		Conditioning: conditioning,
	}, nil
}

// Validate reports whether the CPT actually sums to 1 over its
// conditioned variables for every assignment of its conditioning
// variables, within tol.
func (c *CPT) Validate(tol float64) error {
	// Project keeps only the conditioning variables, i.e. it sums the
	// conditioned variables out: each remaining entry is exactly the
	// per-conditioning-assignment total that must equal 1.
	totals, err := c.Factor.Project(c.Conditioning)
	if err != nil {
		return fmt.Errorf("factor.CPT.Validate: %w", err)
	}
	for _, sum := range totals.data {
		if sum < 1-tol || sum > 1+tol {
			return fmt.Errorf("factor.CPT.Validate: conditioning slice sums to %g, want 1: %w", sum, ErrZeroMass)
		}
	}
	return nil
}

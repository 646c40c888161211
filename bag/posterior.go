package bag

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bnlattice/bnlattice/factor"
)

// uniqueOrdered concatenates lists in order, dropping repeats (keeping
// each variable's first occurrence).
func uniqueOrdered(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// sortedKeys returns the keys of m in lexicographic order, so a map
// argument (whose own iteration order Go leaves undefined) still
// produces a deterministic variable order downstream.
func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ComputePosterior answers the general query P(qDist, qVals | eDist, eVals):
//
//   - qDist lists variables whose full posterior distribution is wanted.
//   - qVals fixes other variables to specific states of interest (e.g.
//     "what is P(Rain=true)", as opposed to the full distribution of
//     Rain).
//   - eDist lists variables to condition on distributionally: the result
//     remains a function of their state (a CPT with eDist among its
//     conditioning variables) rather than being marginalized away.
//   - eVals is hard evidence: variables observed to be in a specific
//     state, restricting the model before any elimination happens.
//
// When no free variable remains (qDist and eDist are both empty and
// qVals pins every queried variable to a concrete state), the answer is a
// single probability and the returned CPT is nil; isScalar reports this
// case, and the probability is returned in scalar.
//
// Evidence that is jointly impossible under the model (every remaining
// outcome has zero probability) fails with ErrInconsistentEvidence.
func (b *Bag) ComputePosterior(qDist []string, qVals map[string]string, eDist []string, eVals map[string]string, opts ...Option) (cpt *factor.CPT, scalar float64, isScalar bool, err error) {
	queryVars := uniqueOrdered(sortedKeys(qVals), qDist)
	qFull := uniqueOrdered(queryVars, eDist)

	joint, err := b.Eliminate(qFull, eVals, opts...)
	if err != nil {
		return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w", err)
	}
	joint, err = joint.Normalize()
	if err != nil {
		if errors.Is(err, factor.ErrZeroMass) {
			return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w: %v", ErrInconsistentEvidence, err)
		}
		return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w", err)
	}

	result := joint
	if len(eDist) > 0 {
		denom, err := joint.SumOut(queryVars...)
		if err != nil {
			return nil, 0, false, fmt.Errorf("bag.ComputePosterior: isolating conditioning marginal: %w", err)
		}
		result, err = factor.Divide(joint, denom)
		if err != nil {
			if errors.Is(err, factor.ErrDivideByZero) {
				return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w: %v", ErrInconsistentEvidence, err)
			}
			return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w", err)
		}
	}

	if len(qVals) > 0 {
		result, err = result.KeepValues(qVals)
		if err != nil {
			return nil, 0, false, fmt.Errorf("bag.ComputePosterior: fixing query values: %w", err)
		}
	}

	if len(result.Scope()) == 0 {
		v, _ := result.At()
		return nil, v, true, nil
	}

	out, err := factor.NewCPT(result, qDist)
	if err != nil {
		return nil, 0, false, fmt.Errorf("bag.ComputePosterior: %w", err)
	}
	return out, 0, false, nil
}

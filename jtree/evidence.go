package jtree

import (
	"fmt"

	"github.com/bnlattice/bnlattice/factor"
)

// SetEvidenceHard pins variable v to exactly one of its declared states:
// the indicator is 1 at that state and 0 elsewhere. Overwrites any
// previous evidence (hard or soft) for v.
func (jt *JunctionTree) SetEvidenceHard(v, state string) error {
	states, ok := jt.varStates[v]
	if !ok {
		return fmt.Errorf("jtree.SetEvidenceHard: %q: %w", v, ErrUnknownVariable)
	}
	data := make([]float64, len(states))
	found := false
	for i, s := range states {
		if s == state {
			data[i] = 1
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("jtree.SetEvidenceHard: %q is not a declared state of %q: %w", state, v, ErrInvalidState)
	}
	ind, err := factor.New([]string{v}, map[string][]string{v: states}, data)
	if err != nil {
		return fmt.Errorf("jtree.SetEvidenceHard: %w", err)
	}
	jt.indicators[v] = ind
	jt.invalidateCaches()
	return nil
}

// SetEvidenceLikelihood installs a soft-evidence indicator for v: one
// non-negative weight per declared state, in declaration order. Weights
// need not sum to 1; GetMarginal normalizes the final result regardless.
func (jt *JunctionTree) SetEvidenceLikelihood(v string, weights []float64) error {
	states, ok := jt.varStates[v]
	if !ok {
		return fmt.Errorf("jtree.SetEvidenceLikelihood: %q: %w", v, ErrUnknownVariable)
	}
	if len(weights) != len(states) {
		return fmt.Errorf("jtree.SetEvidenceLikelihood: %q has %d states, got %d weights", v, len(states), len(weights))
	}
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("jtree.SetEvidenceLikelihood: %q: negative weight %v: %w", v, w, ErrInvalidState)
		}
	}
	data := append([]float64(nil), weights...)
	ind, err := factor.New([]string{v}, map[string][]string{v: states}, data)
	if err != nil {
		return fmt.Errorf("jtree.SetEvidenceLikelihood: %w", err)
	}
	jt.indicators[v] = ind
	jt.invalidateCaches()
	return nil
}

// ResetEvidence restores v's indicator to all-ones, retracting whatever
// evidence (hard or soft) was previously set.
func (jt *JunctionTree) ResetEvidence(v string) error {
	states, ok := jt.varStates[v]
	if !ok {
		return fmt.Errorf("jtree.ResetEvidence: %q: %w", v, ErrUnknownVariable)
	}
	ind, err := onesFactor(v, states)
	if err != nil {
		return fmt.Errorf("jtree.ResetEvidence: %w", err)
	}
	jt.indicators[v] = ind
	jt.invalidateCaches()
	return nil
}

// ResetAllEvidence retracts evidence for every variable in the tree.
func (jt *JunctionTree) ResetAllEvidence() error {
	for v := range jt.varStates {
		if err := jt.ResetEvidence(v); err != nil {
			return err
		}
	}
	return nil
}

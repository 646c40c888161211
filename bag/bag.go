package bag

import (
	"fmt"

	"github.com/bnlattice/bnlattice/factor"
)

// Bag is a flat, unordered collection of factors with no persistent
// elimination structure. It answers one query at a time: Eliminate
// builds a fresh elimination order (or uses the one an Option supplies)
// on every call and discards all intermediate factors once it returns.
//
// A Bag does not validate that its factors form a coherent Bayesian
// network (no cycle check, no CPT normalization check); callers that
// need those guarantees should validate via bnadapter before loading
// factors into a Bag.
type Bag struct {
	name    string
	factors []*factor.Factor
}

// New returns a Bag named name holding a copy of factors.
func New(name string, factors []*factor.Factor) *Bag {
	cp := make([]*factor.Factor, len(factors))
	copy(cp, factors)
	return &Bag{name: name, factors: cp}
}

// Name returns the Bag's name.
func (b *Bag) Name() string { return b.name }

// Factors returns a copy of the Bag's factor list.
func (b *Bag) Factors() []*factor.Factor {
	out := make([]*factor.Factor, len(b.factors))
	copy(out, b.factors)
	return out
}

// Options configures a single call to Eliminate or ComputePosterior.
type options struct {
	order OrderStrategy
}

// Option customizes elimination behavior.
type Option func(*options)

// WithOrderStrategy overrides the default elimination-order strategy
// (DiscoveryOrder) with fn.
func WithOrderStrategy(fn OrderStrategy) Option {
	return func(o *options) { o.order = fn }
}

func resolveOptions(opts []Option) *options {
	o := &options{order: DiscoveryOrder}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Eliminate computes the joint factor over q, marginalizing out every
// other variable, under the given evidence (a variable->state map
// restricting the model before elimination begins). It is the single
// algorithmic core the rest of the package is built on:
//
//  1. Restrict every carried factor to the declared evidence via
//     KeepValues (a no-op for factors that don't mention an evidence
//     variable, and for factors with no overlap at all).
//  2. Choose an elimination order over the variables that remain after
//     dropping q and the evidence variables (both are never eliminated:
//     evidence variables are already fixed, q variables are the answer).
//  3. For each variable in that order, multiply together every
//     surviving factor that mentions it, sum the variable out of the
//     product, and replace those factors with the single result.
//  4. Multiply whatever remains into one factor and reorder its scope
//     to match q.
func (b *Bag) Eliminate(q []string, evidence map[string]string, opts ...Option) (*factor.Factor, error) {
	if len(b.factors) == 0 {
		return nil, fmt.Errorf("bag.Eliminate: %w", ErrEmptyBag)
	}
	cfg := resolveOptions(opts)

	working := make([]*factor.Factor, len(b.factors))
	for i, f := range b.factors {
		restricted, err := f.KeepValues(evidence)
		if err != nil {
			return nil, fmt.Errorf("bag.Eliminate: restricting evidence: %w", err)
		}
		working[i] = restricted
	}

	qSet := make(map[string]bool, len(q))
	for _, v := range q {
		qSet[v] = true
	}
	order := cfg.order(working, qSet)

	for _, v := range order {
		var related, rest []*factor.Factor
		for _, f := range working {
			if f.HasVar(v) {
				related = append(related, f)
			} else {
				rest = append(rest, f)
			}
		}
		if len(related) == 0 {
			continue
		}
		product, err := factor.MultiplyAll(related)
		if err != nil {
			return nil, fmt.Errorf("bag.Eliminate: multiplying factors containing %q: %w", v, err)
		}
		summed, err := product.SumOut(v)
		if err != nil {
			return nil, fmt.Errorf("bag.Eliminate: summing out %q: %w", v, err)
		}
		working = append(rest, summed)
	}

	result, err := factor.MultiplyAll(working)
	if err != nil {
		return nil, fmt.Errorf("bag.Eliminate: combining remaining factors: %w", err)
	}
	if len(q) == 0 {
		return result, nil
	}
	reordered, err := result.ReorderScope(q)
	if err != nil {
		return nil, fmt.Errorf("bag.Eliminate: result scope does not match query %v: %w", q, err)
	}
	return reordered, nil
}

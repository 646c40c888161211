package factor

import (
	"fmt"
	"sort"
)

// indexOf returns the position of v in scope, or -1.
func indexOf(scope []string, v string) int {
	for i, s := range scope {
		if s == v {
			return i
		}
	}
	return -1
}

// stridesFor computes row-major strides for an arbitrary scope given a
// states lookup, without requiring a *Factor.
func stridesFor(scope []string, states map[string][]string) []int {
	n := len(scope)
	strides := make([]int, n)
	acc := 1
	for i := n - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= len(states[scope[i]])
	}
	return strides
}

func totalSize(scope []string, states map[string][]string) int {
	n := 1
	for _, v := range scope {
		n *= len(states[v])
	}
	return n
}

// unionScope builds the combined scope of f and g (f's scope first, then
// g's variables not already present) and validates that any variable
// shared between the two factors declares the same state order in both.
func unionScope(f, g *Factor) ([]string, map[string][]string, error) {
	states := make(map[string][]string, len(f.scope)+len(g.scope))
	for _, v := range f.scope {
		states[v] = f.states[v]
	}
	union := append([]string(nil), f.scope...)
	for _, v := range g.scope {
		if fLabels, ok := states[v]; ok {
			if !sameOrder(fLabels, g.states[v]) {
				return nil, nil, fmt.Errorf("factor: variable %q has disagreeing state order between operands: %w", v, ErrScopeMismatch)
			}
			continue
		}
		states[v] = g.states[v]
		union = append(union, v)
	}
	return union, states, nil
}

// combine implements a pointwise binary operation between two factors,
// aligned on shared variables and broadcasting over variables present in
// only one operand (including the empty-scope scalar case).
func combine(f, g *Factor, op func(a, b float64) (float64, error)) (*Factor, error) {
	union, states, err := unionScope(f, g)
	if err != nil {
		return nil, err
	}
	fStrides := f.strides()
	gStrides := g.strides()
	newStrides := stridesFor(union, states)
	total := totalSize(union, states)

	fHas := make([]bool, len(union))
	fStride := make([]int, len(union))
	gHas := make([]bool, len(union))
	gStride := make([]int, len(union))
	for i, v := range union {
		if p := indexOf(f.scope, v); p >= 0 {
			fHas[i] = true
			fStride[i] = fStrides[p]
		}
		if p := indexOf(g.scope, v); p >= 0 {
			gHas[i] = true
			gStride[i] = gStrides[p]
		}
	}

	data := make([]float64, total)
	digits := make([]int, len(union))
	for flat := 0; flat < total; flat++ {
		unflatten(flat, newStrides, digits)
		fIdx, gIdx := 0, 0
		for i, d := range digits {
			if fHas[i] {
				fIdx += d * fStride[i]
			}
			if gHas[i] {
				gIdx += d * gStride[i]
			}
		}
		v, err := op(f.data[fIdx], g.data[gIdx])
		if err != nil {
			return nil, err
		}
		data[flat] = v
	}

	newStates := make(map[string][]string, len(union))
	for _, v := range union {
		newStates[v] = append([]string(nil), states[v]...)
	}
	return &Factor{scope: union, states: newStates, data: data}, nil
}

// Multiply returns the pointwise product of f and g, aligned on shared
// variables. The result's scope is the union of the operands' scopes.
// A zero-scope (scalar) operand broadcasts.
func Multiply(f, g *Factor) (*Factor, error) {
	out, err := combine(f, g, func(a, b float64) (float64, error) { return a * b, nil })
	if err != nil {
		return nil, fmt.Errorf("factor.Multiply: %w", err)
	}
	return out, nil
}

// Add returns the pointwise sum of f and g, aligned and broadcast the
// same way as Multiply.
func Add(f, g *Factor) (*Factor, error) {
	out, err := combine(f, g, func(a, b float64) (float64, error) { return a + b, nil })
	if err != nil {
		return nil, fmt.Errorf("factor.Add: %w", err)
	}
	return out, nil
}

// Divide returns the pointwise quotient f/g. By the standard
// message-passing convention, 0/0 is defined as 0; x/0 for x != 0 fails
// with ErrDivideByZero.
func Divide(f, g *Factor) (*Factor, error) {
	out, err := combine(f, g, func(a, b float64) (float64, error) {
		if b == 0 {
			if a == 0 {
				return 0, nil
			}
			return 0, ErrDivideByZero
		}
		return a / b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("factor.Divide: %w", err)
	}
	return out, nil
}

// MultiplyAll returns the product of factors. The product of zero
// factors is the scalar 1; the product of one factor is that factor
// itself (returned as-is, not multiplied by an implicit identity).
func MultiplyAll(factors []*Factor) (*Factor, error) {
	if len(factors) == 0 {
		return Scalar(1), nil
	}
	result := factors[0]
	for _, f := range factors[1:] {
		var err error
		result, err = Multiply(result, f)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// sumOutOne eliminates a single variable already known to be in scope,
// summing the table over that axis.
func (f *Factor) sumOutOne(v string) *Factor {
	pos := indexOf(f.scope, v)
	strides := f.strides()
	newScope := make([]string, 0, len(f.scope)-1)
	newStates := make(map[string][]string, len(f.scope)-1)
	for i, s := range f.scope {
		if i == pos {
			continue
		}
		newScope = append(newScope, s)
		newStates[s] = f.states[s]
	}
	newStrides := stridesFor(newScope, newStates)
	newData := make([]float64, totalSize(newScope, newStates))

	digits := make([]int, len(f.scope))
	for flat := 0; flat < len(f.data); flat++ {
		unflatten(flat, strides, digits)
		newFlat := 0
		j := 0
		for i, d := range digits {
			if i == pos {
				continue
			}
			newFlat += d * newStrides[j]
			j++
		}
		newData[newFlat] += f.data[flat]
	}

	out := &Factor{scope: newScope, states: make(map[string][]string, len(newScope)), data: newData}
	for _, s := range newScope {
		out.states[s] = append([]string(nil), newStates[s]...)
	}
	return out
}

// SumOut marginalizes the given variables out of the factor, left to
// right. Summing out an empty list returns a copy of the receiver.
// Every variable must currently be in scope or ErrNotInScope is
// returned and no partial elimination is kept.
func (f *Factor) SumOut(vars ...string) (*Factor, error) {
	cur := f
	for _, v := range vars {
		if !cur.HasVar(v) {
			return nil, fmt.Errorf("factor.SumOut: %q: %w", v, ErrNotInScope)
		}
		cur = cur.sumOutOne(v)
	}
	if cur == f {
		return f.clone(), nil
	}
	return cur, nil
}

// Project restricts the factor to the scope subset keep, summing out the
// complement. The retained variables keep the relative order they had
// in the original scope.
func (f *Factor) Project(keep []string) (*Factor, error) {
	keepSet := make(map[string]bool, len(keep))
	for _, v := range keep {
		if !f.HasVar(v) {
			return nil, fmt.Errorf("factor.Project: %q: %w", v, ErrNotInScope)
		}
		keepSet[v] = true
	}
	var complement []string
	for _, v := range f.scope {
		if !keepSet[v] {
			complement = append(complement, v)
		}
	}
	return f.SumOut(complement...)
}

// restrictOne fixes variable v (already known to be in scope) to a
// single declared state index si, dropping v from the resulting scope.
func (f *Factor) restrictOne(v string, si int) *Factor {
	pos := indexOf(f.scope, v)
	strides := f.strides()
	newScope := make([]string, 0, len(f.scope)-1)
	newStates := make(map[string][]string, len(f.scope)-1)
	for i, s := range f.scope {
		if i == pos {
			continue
		}
		newScope = append(newScope, s)
		newStates[s] = f.states[s]
	}
	newLen := totalSize(newScope, newStates)
	newData := make([]float64, newLen)

	base := si * strides[pos]
	// The remaining axes, in order, form contiguous runs only when pos is
	// the last axis; in general we must walk every remaining assignment.
	newStrides := stridesFor(newScope, newStates)
	digits := make([]int, len(newScope))
	for flat := 0; flat < newLen; flat++ {
		unflatten(flat, newStrides, digits)
		oldFlat := base
		j := 0
		for i := range f.scope {
			if i == pos {
				continue
			}
			oldFlat += digits[j] * strides[i]
			j++
		}
		newData[flat] = f.data[oldFlat]
	}

	out := &Factor{scope: newScope, states: make(map[string][]string, len(newScope)), data: newData}
	for _, s := range newScope {
		out.states[s] = append([]string(nil), newStates[s]...)
	}
	return out
}

// KeepValues restricts every scope variable named in evidence to the
// given state, dropping it from the resulting scope. Variables in
// evidence that are not in the factor's scope are silently ignored, so
// this is safe to apply uniformly across a heterogeneous set of factors
// (see bag.Eliminate). An evidence value that names an undeclared state
// for a variable that IS in scope fails with ErrInvalidState.
func (f *Factor) KeepValues(evidence map[string]string) (*Factor, error) {
	keys := make([]string, 0, len(evidence))
	for v := range evidence {
		if f.HasVar(v) {
			keys = append(keys, v)
		}
	}
	sort.Strings(keys)

	cur := f
	for _, v := range keys {
		state := evidence[v]
		si := cur.stateIndex(v, state)
		if si < 0 {
			return nil, fmt.Errorf("factor.KeepValues: %q is not a declared state of %q: %w", state, v, ErrInvalidState)
		}
		cur = cur.restrictOne(v, si)
	}
	if cur == f {
		return f.clone(), nil
	}
	return cur, nil
}

// Normalize returns a new factor whose entries are divided by the total
// sum of the receiver's entries. Fails with ErrZeroMass if that sum is
// zero.
func (f *Factor) Normalize() (*Factor, error) {
	var sum float64
	for _, v := range f.data {
		sum += v
	}
	if sum == 0 {
		return nil, fmt.Errorf("factor.Normalize: %w", ErrZeroMass)
	}
	out := f.clone()
	for i := range out.data {
		out.data[i] /= sum
	}
	return out, nil
}

// Sum returns the total of all entries in the factor.
func (f *Factor) Sum() float64 {
	var sum float64
	for _, v := range f.data {
		sum += v
	}
	return sum
}

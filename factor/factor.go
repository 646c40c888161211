package factor

import "fmt"

// Factor is a dense, non-negative, multi-dimensional probability table
// over an ordered scope of discrete variables.
//
// data holds one entry per assignment of scope, laid out in row-major
// (lexicographic) order: the first scope variable varies slowest, the
// last varies fastest. A Factor with empty scope holds a single scalar.
//
// Factor values are never mutated in place; every method that would
// change scope, states, or data returns a new *Factor.
type Factor struct {
	scope  []string            // ordered variable names; may be empty
	states map[string][]string // variable -> ordered state labels; keys == scope
	data   []float64           // flat table, len == product of |states[v]|
}

// New constructs a Factor from states (an ordered variable->state-list
// mapping whose key order fixes the scope) and a flat, non-negative data
// slice of length equal to the product of state-set sizes.
//
// order gives the scope order explicitly, since Go maps have no
// intrinsic iteration order; it must contain exactly the keys of states.
func New(order []string, states map[string][]string, data []float64) (*Factor, error) {
	if len(order) != len(states) {
		return nil, fmt.Errorf("factor.New: order has %d variables, states has %d: %w", len(order), len(states), ErrShape)
	}
	scope := make([]string, len(order))
	copy(scope, order)
	st := make(map[string][]string, len(states))
	want := 1
	for _, v := range order {
		labels, ok := states[v]
		if !ok {
			return nil, fmt.Errorf("factor.New: order names %q, not present in states: %w", v, ErrShape)
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("factor.New: variable %q has no declared states: %w", v, ErrShape)
		}
		cp := make([]string, len(labels))
		copy(cp, labels)
		st[v] = cp
		want *= len(cp)
	}
	if len(data) != want {
		return nil, fmt.Errorf("factor.New: data has %d entries, want %d: %w", len(data), want, ErrShape)
	}
	buf := make([]float64, len(data))
	for i, v := range data {
		if v < 0 {
			return nil, fmt.Errorf("factor.New: entry %d is negative (%g): %w", i, v, ErrNegativeEntry)
		}
		buf[i] = v
	}

	return &Factor{scope: scope, states: st, data: buf}, nil
}

// Scalar returns a zero-scope Factor holding the single value v.
func Scalar(v float64) *Factor {
	return &Factor{scope: nil, states: map[string][]string{}, data: []float64{v}}
}

// Scope returns the factor's ordered variable list. The returned slice
// is a copy; mutating it does not affect the factor.
func (f *Factor) Scope() []string {
	out := make([]string, len(f.scope))
	copy(out, f.scope)
	return out
}

// States returns the ordered state labels declared for v, and whether v
// is in the factor's scope.
func (f *Factor) States(v string) ([]string, bool) {
	labels, ok := f.states[v]
	if !ok {
		return nil, false
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out, true
}

// HasVar reports whether v is in the factor's scope.
func (f *Factor) HasVar(v string) bool {
	_, ok := f.states[v]
	return ok
}

// Len returns the number of entries in the factor's dense table
// (the product of the state-set sizes of its scope).
func (f *Factor) Len() int { return len(f.data) }

// Data returns a copy of the flat, row-major backing table.
func (f *Factor) Data() []float64 {
	out := make([]float64, len(f.data))
	copy(out, f.data)
	return out
}

// strides returns, for each position in scope, the number of entries
// spanned by a unit increment of that variable's own state index
// — i.e. stride[i] = product of |states[scope[j]]| for j > i. strides[i]
// is the flat-index multiplier for scope[i].
func (f *Factor) strides() []int {
	n := len(f.scope)
	strides := make([]int, n)
	acc := 1
	for i := n - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= len(f.states[f.scope[i]])
	}
	return strides
}

// stateIndex returns the position of label within the declared states
// of variable v, or -1 if label is not a declared state of v.
func (f *Factor) stateIndex(v, label string) int {
	for i, s := range f.states[v] {
		if s == label {
			return i
		}
	}
	return -1
}

// At returns the scalar entry for a full assignment of the factor's
// scope. values must have exactly one entry per scope variable, in
// scope order, and each must be a declared state of its variable.
func (f *Factor) At(values ...string) (float64, error) {
	if len(values) != len(f.scope) {
		return 0, fmt.Errorf("factor.At: got %d values for scope of length %d: %w", len(values), len(f.scope), ErrScopeMismatch)
	}
	strides := f.strides()
	idx := 0
	for i, v := range f.scope {
		si := f.stateIndex(v, values[i])
		if si < 0 {
			return 0, fmt.Errorf("factor.At: %q is not a declared state of %q: %w", values[i], v, ErrInvalidState)
		}
		idx += si * strides[i]
	}
	return f.data[idx], nil
}

// IndexPrefix restricts the first len(values) scope variables (in scope
// order) to the given states and returns the resulting sub-factor, whose
// scope is the remaining (unrestricted) suffix of the original scope.
// Passing as many values as the full scope yields a zero-scope Factor
// holding a single scalar, matching spec's "full tuple returns a scalar".
func (f *Factor) IndexPrefix(values ...string) (*Factor, error) {
	if len(values) > len(f.scope) {
		return nil, fmt.Errorf("factor.IndexPrefix: %d values exceeds scope length %d: %w", len(values), len(f.scope), ErrScopeMismatch)
	}
	strides := f.strides()
	base := 0
	for i, v := range values {
		si := f.stateIndex(f.scope[i], v)
		if si < 0 {
			return nil, fmt.Errorf("factor.IndexPrefix: %q is not a declared state of %q: %w", v, f.scope[i], ErrInvalidState)
		}
		base += si * strides[i]
	}
	remScope := f.scope[len(values):]
	remLen := 1
	for _, v := range remScope {
		remLen *= len(f.states[v])
	}
	out := make([]float64, remLen)
	copy(out, f.data[base:base+remLen])

	newStates := make(map[string][]string, len(remScope))
	for _, v := range remScope {
		newStates[v] = append([]string(nil), f.states[v]...)
	}
	return &Factor{scope: append([]string(nil), remScope...), states: newStates, data: out}, nil
}

// ReorderScope permutes the factor's axes so that its scope matches
// order, which must be a permutation of the current scope.
func (f *Factor) ReorderScope(order []string) (*Factor, error) {
	if len(order) != len(f.scope) {
		return nil, fmt.Errorf("factor.ReorderScope: order has %d variables, scope has %d: %w", len(order), len(f.scope), ErrScopeMismatch)
	}
	seen := make(map[string]bool, len(order))
	for _, v := range order {
		if !f.HasVar(v) {
			return nil, fmt.Errorf("factor.ReorderScope: %q not in scope: %w", v, ErrScopeMismatch)
		}
		if seen[v] {
			return nil, fmt.Errorf("factor.ReorderScope: %q repeated: %w", v, ErrScopeMismatch)
		}
		seen[v] = true
	}
	if sameOrder(f.scope, order) {
		return f.clone(), nil
	}

	newStates := make(map[string][]string, len(order))
	for _, v := range order {
		newStates[v] = append([]string(nil), f.states[v]...)
	}
	out := &Factor{scope: append([]string(nil), order...), states: newStates, data: make([]float64, len(f.data))}
	oldStrides := f.strides()
	newStrides := out.strides()

	// oldPos[i] is the position of order[i] within the old scope.
	oldPos := make([]int, len(order))
	for i, v := range order {
		for j, ov := range f.scope {
			if ov == v {
				oldPos[i] = j
				break
			}
		}
	}

	digits := make([]int, len(order))
	for flat := 0; flat < len(f.data); flat++ {
		unflatten(flat, newStrides, digits)
		oldFlat := 0
		for i, d := range digits {
			oldFlat += d * oldStrides[oldPos[i]]
		}
		out.data[flat] = f.data[oldFlat]
	}

	return out, nil
}

// unflatten decodes flat index idx against strides into per-axis digits.
func unflatten(idx int, strides []int, digits []int) {
	for i, s := range strides {
		digits[i] = idx / s
		idx -= digits[i] * s
	}
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (f *Factor) clone() *Factor {
	newStates := make(map[string][]string, len(f.states))
	for v, labels := range f.states {
		newStates[v] = append([]string(nil), labels...)
	}
	return &Factor{
		scope:  append([]string(nil), f.scope...),
		states: newStates,
		data:   append([]float64(nil), f.data...),
	}
}

// Equals reports whether f and other have the same scope (same order),
// the same declared state order per variable, and entries that agree
// within tol.
func (f *Factor) Equals(other *Factor, tol float64) bool {
	if other == nil {
		return false
	}
	if !sameOrder(f.scope, other.scope) {
		return false
	}
	for _, v := range f.scope {
		if !sameOrder(f.states[v], other.states[v]) {
			return false
		}
	}
	if len(f.data) != len(other.data) {
		return false
	}
	for i := range f.data {
		d := f.data[i] - other.data[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// String renders a short debug representation of the factor.
func (f *Factor) String() string {
	return fmt.Sprintf("Factor(scope=%v, len=%d)", f.scope, len(f.data))
}

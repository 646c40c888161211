package factor

import "fmt"

// Dict is the external dictionary representation of a Factor, as
// described in the module's serialization contract. Scope order fixes
// the row-major layout of Data.
type Dict struct {
	Type   string              `json:"type"`
	Scope  []string            `json:"scope"`
	States map[string][]string `json:"states"`
	Data   []float64           `json:"data"`
}

// AsDict returns the dictionary representation of f.
func (f *Factor) AsDict() Dict {
	states := make(map[string][]string, len(f.states))
	for v, labels := range f.states {
		states[v] = append([]string(nil), labels...)
	}
	return Dict{
		Type:   "Factor",
		Scope:  f.Scope(),
		States: states,
		Data:   f.Data(),
	}
}

// FromDict reconstructs a Factor from its dictionary representation.
// Round-trips with AsDict: FromDict(f.AsDict()).Equals(f) holds.
func FromDict(d Dict) (*Factor, error) {
	if d.Type != "" && d.Type != "Factor" {
		return nil, fmt.Errorf("factor.FromDict: unexpected type %q: %w", d.Type, ErrShape)
	}
	return New(d.Scope, d.States, d.Data)
}

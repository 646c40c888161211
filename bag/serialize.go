package bag

import (
	"fmt"

	"github.com/bnlattice/bnlattice/factor"
)

// Dict is the data-dictionary wire form of a Bag: a name and an ordered
// list of factor dicts, suitable for json.Marshal/Unmarshal.
type Dict struct {
	Type    string        `json:"type"`
	Name    string        `json:"name"`
	Factors []factor.Dict `json:"factors"`
}

// AsDict renders the Bag as a Dict.
func (b *Bag) AsDict() Dict {
	out := Dict{Type: "Bag", Name: b.name, Factors: make([]factor.Dict, len(b.factors))}
	for i, f := range b.factors {
		out.Factors[i] = f.AsDict()
	}
	return out
}

// FromDict reconstructs a Bag from its Dict form.
func FromDict(d Dict) (*Bag, error) {
	factors := make([]*factor.Factor, len(d.Factors))
	for i, fd := range d.Factors {
		f, err := factor.FromDict(fd)
		if err != nil {
			return nil, fmt.Errorf("bag.FromDict: factor %d: %w", i, err)
		}
		factors[i] = f
	}
	return New(d.Name, factors), nil
}

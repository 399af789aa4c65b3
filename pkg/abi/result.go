package abi

import (
	"encoding/json"
)

// Result is a decoded tuple or array. Values are accessible by position
// and, for tuples with named components, by name. A component named
// "length" is exposed as "_length".
type Result struct {
	values []any
	names  []string
	index  map[string]int
}

func newResult(values []any) *Result {
	return &Result{values: values}
}

// NewResult creates a Result from the given values, names[i] is attached to
// values[i] following the same rules as for decoded tuples. names can be
// shorter than values and can contain empty strings for unnamed values.
func NewResult(values []any, names []string) *Result {
	var r = newResult(values)
	for i := range names {
		if i < len(values) {
			r.name(names[i], i)
		}
	}
	return r
}

// name attaches the given name to the value at position i unless the name
// is already taken.
func (r *Result) name(name string, i int) {
	if name == "" {
		return
	}
	if name == "length" {
		name = "_length"
	}
	if _, ok := r.index[name]; ok {
		return
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[name] = i
	r.names = append(r.names, name)
}

// Len returns the number of decoded values.
func (r *Result) Len() int {
	return len(r.values)
}

// Index returns the value at position i.
func (r *Result) Index(i int) any {
	return r.values[i]
}

// Get returns the value with the given name.
func (r *Result) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Values returns all values in positional order.
func (r *Result) Values() []any {
	return r.values
}

// Names returns the names attached to values in the order of declaration.
func (r *Result) Names() []string {
	return r.names
}

// NameOf returns the name of the value at position i, if any.
func (r *Result) NameOf(i int) string {
	for _, n := range r.names {
		if r.index[n] == i {
			return n
		}
	}
	return ""
}

// Map returns named values as a map, it can be used as a keyed tuple value
// for encoding.
func (r *Result) Map() map[string]any {
	var m = make(map[string]any, len(r.names))
	for _, n := range r.names {
		m[n] = r.values[r.index[n]]
	}
	return m
}

// MarshalJSON implements the json.Marshaler interface, the result is
// marshaled as a JSON array of values.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.values)
}

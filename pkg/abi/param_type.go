package abi

import (
	"strings"
)

// ParamType is a node of the parsed ABI type tree. Type is always canonical,
// so integer types have an explicit width (uint256, int256) and array
// suffixes are kept in it ("uint8[3]", "tuple[]"). Components are set for
// tuple types only.
type ParamType struct {
	Type       string      `json:"type" yaml:"type"`
	Name       string      `json:"name" yaml:"name,omitempty"`
	Indexed    bool        `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	Components []ParamType `json:"components,omitempty" yaml:"components,omitempty"`
}

// Copy returns a deep copy of the parameter type.
func (p ParamType) Copy() ParamType {
	var c = p
	if p.Components != nil {
		c.Components = make([]ParamType, len(p.Components))
		for i := range p.Components {
			c.Components[i] = p.Components[i].Copy()
		}
	}
	return c
}

// IsTuple returns true for tuples and arrays of tuples.
func (p ParamType) IsTuple() bool {
	return strings.HasPrefix(p.Type, "tuple")
}

// CanonicalType returns the type in the form used for method and event
// signatures, tuples are written as parenthesized lists of their component
// types: "(uint8,string)[]".
func (p ParamType) CanonicalType() string {
	if !p.IsTuple() {
		return p.Type
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range p.Components {
		if i != 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Components[i].CanonicalType())
	}
	sb.WriteByte(')')
	sb.WriteString(strings.TrimPrefix(p.Type, "tuple"))
	return sb.String()
}

// String returns a human-readable form of the parameter including its
// name, e.g. "tuple(uint8 a,string) indexed value".
func (p ParamType) String() string {
	var sb strings.Builder
	if p.IsTuple() {
		sb.WriteString("tuple(")
		for i := range p.Components {
			if i != 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.Components[i].String())
		}
		sb.WriteByte(')')
		sb.WriteString(strings.TrimPrefix(p.Type, "tuple"))
	} else {
		sb.WriteString(p.Type)
	}
	if p.Indexed {
		sb.WriteString(" indexed")
	}
	if p.Name != "" {
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
	}
	return sb.String()
}

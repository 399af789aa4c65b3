package abi

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// FragmentType is a kind of ABI entry.
type FragmentType string

// Supported fragment types.
const (
	FunctionType    FragmentType = "function"
	EventType       FragmentType = "event"
	ConstructorType FragmentType = "constructor"
)

// Fragment is a single ABI entry: function, event or constructor. It's
// compatible with the JSON ABI representation produced by Solidity compiler.
type Fragment struct {
	Type            FragmentType `json:"type" yaml:"type"`
	Name            string       `json:"name,omitempty" yaml:"name,omitempty"`
	Inputs          []ParamType  `json:"inputs" yaml:"inputs"`
	Outputs         []ParamType  `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Anonymous       bool         `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Constant        bool         `json:"constant,omitempty" yaml:"constant,omitempty"`
	Payable         bool         `json:"payable,omitempty" yaml:"payable,omitempty"`
	StateMutability string       `json:"stateMutability,omitempty" yaml:"stateMutability,omitempty"`
	Gas             *big.Int     `json:"gas,omitempty" yaml:"gas,omitempty"`
}

var (
	regexParen      = regexp.MustCompile(`^([^)(]*)\((.*)\)([^)(]*)$`)
	regexIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	regexDigits     = regexp.MustCompile(`^[0-9]+$`)
	regexSpaces     = regexp.MustCompile(`\s+`)
)

// Signature returns the canonical signature of the fragment used to
// calculate method selectors and event topics, e.g. "transfer(address,uint256)".
func (f *Fragment) Signature() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i := range f.Inputs {
		if i != 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Inputs[i].CanonicalType())
	}
	sb.WriteByte(')')
	return sb.String()
}

// String returns a human-readable form of the fragment that can be parsed
// back with ParseSignature.
func (f *Fragment) String() string {
	var sb strings.Builder
	writeParams := func(params []ParamType) {
		sb.WriteByte('(')
		for i := range params {
			if i != 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(params[i].String())
		}
		sb.WriteByte(')')
	}
	switch f.Type {
	case EventType:
		sb.WriteString("event ")
		sb.WriteString(f.Name)
		writeParams(f.Inputs)
		if f.Anonymous {
			sb.WriteString(" anonymous")
		}
	case ConstructorType:
		sb.WriteString("constructor")
		writeParams(f.Inputs)
		if f.Payable {
			sb.WriteString(" payable")
		}
	default:
		sb.WriteString("function ")
		sb.WriteString(f.Name)
		writeParams(f.Inputs)
		if f.StateMutability != "" {
			sb.WriteByte(' ')
			sb.WriteString(f.StateMutability)
		} else if f.Constant {
			sb.WriteString(" constant")
		}
		if len(f.Outputs) != 0 {
			sb.WriteString(" returns ")
			writeParams(f.Outputs)
		}
	}
	if f.Gas != nil {
		sb.WriteString(" @")
		sb.WriteString(f.Gas.String())
	}
	return sb.String()
}

// ParseSignature parses a human-readable function or event signature like
// "function balanceOf(address owner) view returns (uint256)" or
// "event Transfer(address indexed from, address indexed to, uint256 value)".
// Signatures without a keyword are treated as functions, a function named
// "constructor" is a constructor.
func ParseSignature(sig string) (Fragment, error) {
	return parseSignature(sig, DefaultMaxDepth)
}

func parseSignature(sig string, maxDepth int) (Fragment, error) {
	s := regexSpaces.ReplaceAllString(sig, " ")
	s = strings.ReplaceAll(s, "(", " (")
	s = strings.ReplaceAll(s, ")", ") ")
	s = strings.TrimSpace(regexSpaces.ReplaceAllString(s, " "))

	if strings.HasPrefix(s, "event ") {
		return parseEvent(strings.TrimSpace(s[len("event "):]), maxDepth)
	}
	s = strings.TrimPrefix(s, "function ")
	return parseFunction(strings.TrimSpace(s), maxDepth)
}

func parseParams(list string, allowIndexed bool, maxDepth int) ([]ParamType, error) {
	parts, err := SplitNesting(list)
	if err != nil {
		return nil, err
	}
	var params = make([]ParamType, 0, len(parts))
	for _, part := range parts {
		p, err := parseParam(part, allowIndexed, maxDepth)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func parseEvent(s string, maxDepth int) (Fragment, error) {
	var f = Fragment{Type: EventType, Inputs: []ParamType{}}

	match := regexParen.FindStringSubmatch(s)
	if match == nil {
		return Fragment{}, fmt.Errorf("%w: invalid event %q", ErrInvalidSignature, s)
	}
	f.Name = strings.TrimSpace(match[1])
	if f.Name != "" && !regexIdentifier.MatchString(f.Name) {
		return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, f.Name)
	}
	inputs, err := parseParams(match[2], true, maxDepth)
	if err != nil {
		return Fragment{}, err
	}
	f.Inputs = append(f.Inputs, inputs...)
	for _, modifier := range strings.Split(match[3], " ") {
		if modifier == "anonymous" {
			f.Anonymous = true
		}
	}
	return f, nil
}

func parseFunction(s string, maxDepth int) (Fragment, error) {
	var f = Fragment{Type: FunctionType, Inputs: []ParamType{}}

	comps := strings.Split(s, "@")
	if len(comps) != 1 {
		if len(comps) > 2 {
			return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidSignature, s)
		}
		gas := strings.TrimSpace(comps[1])
		if !regexDigits.MatchString(gas) {
			return Fragment{}, fmt.Errorf("%w: bad gas %q", ErrInvalidSignature, comps[1])
		}
		f.Gas, _ = new(big.Int).SetString(gas, 10)
		s = comps[0]
	}

	comps = strings.Split(s, " returns ")
	if len(comps) > 2 {
		return Fragment{}, fmt.Errorf("%w: multiple returns in %q", ErrInvalidSignature, s)
	}
	left := regexParen.FindStringSubmatch(strings.TrimSpace(comps[0]))
	if left == nil {
		return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidSignature, s)
	}
	f.Name = strings.TrimSpace(left[1])
	if !regexIdentifier.MatchString(f.Name) {
		return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, left[1])
	}
	inputs, err := parseParams(left[2], false, maxDepth)
	if err != nil {
		return Fragment{}, err
	}
	f.Inputs = append(f.Inputs, inputs...)
	for _, modifier := range strings.Split(left[3], " ") {
		switch modifier {
		case "constant":
			f.Constant = true
		case "payable":
			f.Payable = true
			f.StateMutability = "payable"
		case "pure", "view":
			f.Constant = true
			f.StateMutability = modifier
		}
	}

	if len(comps) > 1 {
		right := regexParen.FindStringSubmatch(strings.TrimSpace(comps[1]))
		if right == nil || strings.TrimSpace(right[1]) != "" || strings.TrimSpace(right[3]) != "" {
			return Fragment{}, fmt.Errorf("%w: unexpected tokens in returns of %q", ErrInvalidSignature, s)
		}
		f.Outputs, err = parseParams(right[2], false, maxDepth)
		if err != nil {
			return Fragment{}, err
		}
	}

	if f.Name == "constructor" {
		if len(f.Outputs) != 0 {
			return Fragment{}, fmt.Errorf("%w: constructor may not have outputs", ErrInvalidSignature)
		}
		f.Type = ConstructorType
		f.Name = ""
		f.Outputs = nil
	}
	return f, nil
}

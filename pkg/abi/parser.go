package abi

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultMaxDepth is the default limit for type nesting (tuples and arrays).
const DefaultMaxDepth = 64

type parseState struct {
	allowType   bool
	allowParams bool
	allowName   bool
	allowArray  bool
	readArray   bool
}

// paramBuilder is a mutable node used while scanning, it's converted into
// an immutable ParamType once parsing is done.
type paramBuilder struct {
	typ        []byte
	name       []byte
	indexed    bool
	components []*paramBuilder
	state      parseState
}

func newParamBuilder() *paramBuilder {
	return &paramBuilder{state: parseState{allowType: true}}
}

// finish completes the node when its definition ends (',', ')' or the end
// of input).
func (b *paramBuilder) finish(allowIndexed bool) {
	if allowIndexed && string(b.name) == "indexed" {
		b.indexed = true
		b.name = b.name[:0]
	}
	b.typ = []byte(verifyType(string(b.typ)))
}

func (b *paramBuilder) build() ParamType {
	var p = ParamType{
		Type:    string(b.typ),
		Name:    string(b.name),
		Indexed: b.indexed,
	}
	if b.components != nil {
		p.Components = make([]ParamType, len(b.components))
		for i := range b.components {
			p.Components[i] = b.components[i].build()
		}
	}
	return p
}

// ParseParamType parses a single parameter definition like "uint", "address[3]",
// "tuple(uint8 a, string b)[] c" or "address indexed from" into a ParamType.
func ParseParamType(s string) (ParamType, error) {
	return parseParam(s, true, DefaultMaxDepth)
}

// parseParam scans the parameter definition with an explicit stack of open
// nodes, the bottom one is the parameter itself and every '(' pushes a new
// tuple component.
func parseParam(param string, allowIndexed bool, maxDepth int) (ParamType, error) {
	var (
		root  = newParamBuilder()
		stack = []*paramBuilder{root}
	)
	unexpected := func(i int) error {
		return fmt.Errorf("%w %q at position %d in %q", ErrUnexpectedCharacter, param[i], i, param)
	}
	for i := 0; i < len(param); i++ {
		var (
			c    = param[i]
			node = stack[len(stack)-1]
		)
		if unicode.IsSpace(rune(c)) {
			c = ' '
		}
		switch c {
		case '(':
			if !node.state.allowParams {
				return ParamType{}, unexpected(i)
			}
			if len(stack) > maxDepth {
				return ParamType{}, fmt.Errorf("%w: %q", ErrTooDeep, param)
			}
			node.state.allowType = false
			node.typ = []byte(verifyType(string(node.typ)))
			child := newParamBuilder()
			node.components = append(node.components, child)
			stack = append(stack, child)

		case ')':
			if len(stack) == 1 {
				return ParamType{}, unexpected(i)
			}
			node.finish(allowIndexed)
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.state.allowParams = false
			parent.state.allowName = true
			parent.state.allowArray = true

		case ',':
			if len(stack) == 1 {
				return ParamType{}, unexpected(i)
			}
			node.finish(allowIndexed)
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			sibling := newParamBuilder()
			parent.components = append(parent.components, sibling)
			stack = append(stack, sibling)

		case ' ':
			// The type is done, a name or parameters may follow.
			if node.state.allowType && len(node.typ) != 0 {
				node.typ = []byte(verifyType(string(node.typ)))
				node.state.allowType = false
				node.state.allowName = true
				node.state.allowParams = true
			}
			// The name is done, unless it's an "indexed" keyword.
			if node.state.allowName && len(node.name) != 0 {
				if allowIndexed && string(node.name) == "indexed" {
					if node.indexed {
						return ParamType{}, unexpected(i)
					}
					node.indexed = true
					node.name = node.name[:0]
				} else {
					node.state.allowName = false
				}
			}

		case '[':
			if !node.state.allowArray {
				return ParamType{}, unexpected(i)
			}
			node.typ = append(node.typ, c)
			node.state.allowArray = false
			node.state.allowName = false
			node.state.readArray = true

		case ']':
			if !node.state.readArray {
				return ParamType{}, unexpected(i)
			}
			node.typ = append(node.typ, c)
			node.state.readArray = false
			node.state.allowArray = true
			node.state.allowName = true

		default:
			switch {
			case node.state.readArray:
				if c < '0' || c > '9' {
					return ParamType{}, unexpected(i)
				}
				node.typ = append(node.typ, c)
			case node.state.allowType:
				node.typ = append(node.typ, c)
				node.state.allowParams = true
				node.state.allowArray = true
			case node.state.allowName:
				node.name = append(node.name, c)
				node.state.allowArray = false
			default:
				return ParamType{}, unexpected(i)
			}
		}
	}
	if len(stack) != 1 {
		return ParamType{}, fmt.Errorf("%w in %q", ErrUnexpectedEOF, param)
	}
	root.finish(allowIndexed)
	return root.build(), nil
}

// verifyType expands the "uint" and "int" aliases (possibly followed by
// an array suffix) to their full 256-bit form.
func verifyType(typ string) string {
	switch {
	case hasAliasPrefix(typ, "uint"):
		return "uint256" + typ[4:]
	case hasAliasPrefix(typ, "int"):
		return "int256" + typ[3:]
	}
	return typ
}

func hasAliasPrefix(typ string, alias string) bool {
	if len(typ) < len(alias) || typ[:len(alias)] != alias {
		return false
	}
	return len(typ) == len(alias) || typ[len(alias)] < '1' || typ[len(alias)] > '9'
}

// SplitNesting splits a comma-separated list of parameters ignoring commas
// inside of parentheses, so "uint8,tuple(bool,string),bytes" becomes three
// elements.
func SplitNesting(value string) ([]string, error) {
	var (
		result []string
		start  int
		depth  int
		accum  bool
	)
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(value[start:i]))
				start = i + 1
				accum = false
				continue
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == -1 {
				return nil, fmt.Errorf("%w in %q", ErrUnbalancedParenthesis, value)
			}
		}
		accum = true
	}
	if accum {
		if last := strings.TrimSpace(value[start:]); last != "" {
			result = append(result, last)
		}
	}
	return result, nil
}

package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
)

// Interface is a contract ABI description: its constructor, functions and
// events.
type Interface struct {
	Constructor *abi.Fragment
	Methods     []abi.Fragment
	Events      []abi.Fragment
}

var regexIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseJSON parses the JSON ABI description as produced by Solidity
// compiler. Entries of unknown types (fallback, receive, error) are skipped.
// Parameter types are normalized, so "uint" becomes "uint256".
func ParseJSON(data []byte) (*Interface, error) {
	var entries []abi.Fragment
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON ABI: %w", err)
	}
	var iface = new(Interface)
	for i := range entries {
		f := entries[i]
		if f.Type == "" {
			f.Type = abi.FunctionType
		}
		if len(f.Outputs) == 0 {
			f.Outputs = nil
		}
		if err := normalizeParams(f.Inputs); err != nil {
			return nil, fmt.Errorf("%s %q: %w", f.Type, f.Name, err)
		}
		if err := normalizeParams(f.Outputs); err != nil {
			return nil, fmt.Errorf("%s %q: %w", f.Type, f.Name, err)
		}
		switch f.Type {
		case abi.FunctionType:
			iface.Methods = append(iface.Methods, f)
		case abi.EventType:
			iface.Events = append(iface.Events, f)
		case abi.ConstructorType:
			if iface.Constructor != nil {
				return nil, errors.New("multiple constructors")
			}
			iface.Constructor = &f
		}
	}
	return iface, nil
}

func normalizeParams(params []abi.ParamType) error {
	for i := range params {
		p, err := abi.ParseParamType(params[i].Type)
		if err != nil {
			return err
		}
		if p.Name != "" || p.Indexed || p.Components != nil {
			return fmt.Errorf("%w: %q", abi.ErrInvalidType, params[i].Type)
		}
		params[i].Type = p.Type
		if err := normalizeParams(params[i].Components); err != nil {
			return err
		}
	}
	return nil
}

// Fragments returns all entries of the interface.
func (i *Interface) Fragments() []abi.Fragment {
	var res = make([]abi.Fragment, 0, len(i.Methods)+len(i.Events)+1)
	if i.Constructor != nil {
		res = append(res, *i.Constructor)
	}
	res = append(res, i.Methods...)
	return append(res, i.Events...)
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Interface) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Fragments())
}

// GetMethod returns the method with the specified name and number of
// parameters (-1 matches any). A full signature like "transfer(address,uint256)"
// can be used instead of the name to pick one of overloaded methods.
func (i *Interface) GetMethod(name string, paramCount int) *abi.Fragment {
	var bySignature = strings.Contains(name, "(")
	for j := range i.Methods {
		m := &i.Methods[j]
		if bySignature {
			if m.Signature() == name {
				return m
			}
			continue
		}
		if m.Name == name && (paramCount == -1 || len(m.Inputs) == paramCount) {
			return m
		}
	}
	return nil
}

// GetEvent returns the event with the specified name or signature.
func (i *Interface) GetEvent(name string) *abi.Fragment {
	var bySignature = strings.Contains(name, "(")
	for j := range i.Events {
		e := &i.Events[j]
		if (bySignature && e.Signature() == name) || (!bySignature && e.Name == name) {
			return e
		}
	}
	return nil
}

// MethodBySelector returns the method with the given selector.
func (i *Interface) MethodBySelector(id [SelectorSize]byte) *abi.Fragment {
	for j := range i.Methods {
		if MethodID(&i.Methods[j]) == id {
			return &i.Methods[j]
		}
	}
	return nil
}

// EventByTopic returns the non-anonymous event with the given ID.
func (i *Interface) EventByTopic(topic [32]byte) *abi.Fragment {
	for j := range i.Events {
		if !i.Events[j].Anonymous && EventID(&i.Events[j]) == topic {
			return &i.Events[j]
		}
	}
	return nil
}

// IsValid checks interface consistency: names are valid identifiers, all
// parameter types are supported and there are no duplicate signatures or
// selector collisions.
func (i *Interface) IsValid() error {
	if i.Constructor != nil {
		if err := validateParams(i.Constructor.Inputs); err != nil {
			return fmt.Errorf("constructor: %w", err)
		}
	}
	for j := range i.Methods {
		m := &i.Methods[j]
		if !regexIdentifier.MatchString(m.Name) {
			return fmt.Errorf("method %q: %w", m.Name, abi.ErrInvalidIdentifier)
		}
		if err := validateParams(m.Inputs); err != nil {
			return fmt.Errorf("method %q: %w", m.Name, err)
		}
		if err := validateParams(m.Outputs); err != nil {
			return fmt.Errorf("method %q outputs: %w", m.Name, err)
		}
	}
	if len(i.Methods) > 1 {
		var ids = make([]string, len(i.Methods))
		for j := range i.Methods {
			id := MethodID(&i.Methods[j])
			ids[j] = string(id[:])
		}
		if stringsHaveDups(ids) {
			return errors.New("duplicate method selectors")
		}
	}
	for j := range i.Events {
		e := &i.Events[j]
		if !regexIdentifier.MatchString(e.Name) {
			return fmt.Errorf("event %q: %w", e.Name, abi.ErrInvalidIdentifier)
		}
		if err := validateParams(e.Inputs); err != nil {
			return fmt.Errorf("event %q: %w", e.Name, err)
		}
	}
	if len(i.Events) > 1 {
		var sigs = make([]string, len(i.Events))
		for j := range i.Events {
			sigs[j] = i.Events[j].Signature()
		}
		if stringsHaveDups(sigs) {
			return errors.New("duplicate event signatures")
		}
	}
	return nil
}

func validateParams(params []abi.ParamType) error {
	for _, p := range params {
		if p.Type == "" {
			return fmt.Errorf("%w: empty parameter type", abi.ErrInvalidType)
		}
	}
	return abi.DefaultCoder.Validate(params)
}

func stringsHaveDups(strs []string) bool {
	var sorted = make([]string, len(strs))
	copy(sorted, strs)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}

/*
Package contract implements contract interaction helpers on top of the ABI
coder: method selectors and event topics, call data building, function
result and event log decoding and JSON ABI descriptions.
*/
package contract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/crypto/hash"
)

// SelectorSize is the size of the method selector prepended to call data.
const SelectorSize = 4

var (
	// ErrNotFunction is returned when an event fragment is used as a
	// function one.
	ErrNotFunction = errors.New("not a function")
	// ErrNotEvent is returned when a non-event fragment is used for log
	// decoding.
	ErrNotEvent = errors.New("not an event")
	// ErrSelectorMismatch is returned when the call data doesn't start with
	// the selector of the expected method.
	ErrSelectorMismatch = errors.New("selector mismatch")
	// ErrTopicMismatch is returned when the first log topic is not the ID of
	// the expected event.
	ErrTopicMismatch = errors.New("topic mismatch")
	// ErrTopicCount is returned when the number of log topics doesn't match
	// the number of indexed event parameters.
	ErrTopicCount = errors.New("wrong number of topics")
)

// Signature returns the canonical signature of the fragment.
func Signature(f *abi.Fragment) string {
	return f.Signature()
}

// MethodID returns the 4-byte selector of the function.
func MethodID(f *abi.Fragment) [SelectorSize]byte {
	var (
		id [SelectorSize]byte
		h  = hash.Keccak256String(f.Signature())
	)
	copy(id[:], h[:SelectorSize])
	return id
}

// EventID returns the topic identifying the event.
func EventID(f *abi.Fragment) [32]byte {
	return hash.Keccak256String(f.Signature())
}

// EncodeFunctionCall returns the call data for the function: the selector
// followed by the encoded arguments. Constructor arguments are encoded
// without a selector.
func EncodeFunctionCall(c *abi.Coder, f *abi.Fragment, values []any) ([]byte, error) {
	if f.Type == abi.EventType {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, f.Signature())
	}
	args, err := c.Pack(f.Inputs, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Signature(), err)
	}
	if f.Type == abi.ConstructorType {
		return args, nil
	}
	id := MethodID(f)
	return append(id[:], args...), nil
}

// DecodeFunctionCall decodes the arguments from the call data of the
// function. The selector is checked against the fragment.
func DecodeFunctionCall(c *abi.Coder, f *abi.Fragment, data []byte) (*abi.Result, error) {
	if f.Type == abi.EventType {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, f.Signature())
	}
	if f.Type == abi.ConstructorType {
		return c.DecodeParams(f.Inputs, data)
	}
	id := MethodID(f)
	if len(data) < SelectorSize || !bytes.Equal(data[:SelectorSize], id[:]) {
		return nil, fmt.Errorf("%w: expected 0x%x for %s", ErrSelectorMismatch, id, f.Signature())
	}
	return c.DecodeParams(f.Inputs, data[SelectorSize:])
}

// DecodeFunctionResult decodes the data returned by the function call.
func DecodeFunctionResult(c *abi.Coder, f *abi.Fragment, data []byte) (*abi.Result, error) {
	if f.Type == abi.EventType {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, f.Signature())
	}
	return c.DecodeParams(f.Outputs, data)
}

// DecodeLog decodes the event log. Non-indexed parameters are decoded from
// data, indexed ones from topics. Indexed parameters of reference types
// (strings, bytes, arrays and tuples) are stored as hashes in topics, so
// they're returned as raw 32-byte topic values. For non-anonymous events the
// first topic must be the event ID.
func DecodeLog(c *abi.Coder, f *abi.Fragment, data []byte, topics [][]byte) (*abi.Result, error) {
	if f.Type != abi.EventType {
		return nil, fmt.Errorf("%w: %s", ErrNotEvent, f.Signature())
	}
	if !f.Anonymous {
		id := EventID(f)
		if len(topics) == 0 || !bytes.Equal(topics[0], id[:]) {
			return nil, fmt.Errorf("%w: expected 0x%x for %s", ErrTopicMismatch, id, f.Signature())
		}
		topics = topics[1:]
	}

	var (
		indexed    []abi.ParamType
		hashed     []bool
		nonIndexed []abi.ParamType
		static     []abi.ParamType
		staticData []byte
	)
	for _, p := range f.Inputs {
		if p.Type == "" {
			return nil, fmt.Errorf("%w: empty parameter type in %s", abi.ErrInvalidType, f.Signature())
		}
		if p.Indexed {
			indexed = append(indexed, p)
			hashed = append(hashed, isHashedTopic(p))
		} else {
			nonIndexed = append(nonIndexed, p)
		}
	}
	if len(indexed) != len(topics) {
		return nil, fmt.Errorf("%w: %d indexed parameters, %d topics", ErrTopicCount, len(indexed), len(topics))
	}
	for i, p := range indexed {
		if len(topics[i]) != abi.WordSize {
			return nil, fmt.Errorf("invalid topic %d length: %d", i, len(topics[i]))
		}
		if !hashed[i] {
			static = append(static, p)
			staticData = append(staticData, topics[i]...)
		}
	}

	staticRes, err := c.DecodeParams(static, staticData)
	if err != nil {
		return nil, fmt.Errorf("indexed parameters: %w", err)
	}
	dataRes, err := c.DecodeParams(nonIndexed, data)
	if err != nil {
		return nil, err
	}

	var (
		values = make([]any, 0, len(f.Inputs))
		names  = make([]string, 0, len(f.Inputs))
		ti, si int
		di     int
	)
	for _, p := range f.Inputs {
		if p.Indexed {
			if hashed[ti] {
				values = append(values, append([]byte(nil), topics[ti]...))
			} else {
				values = append(values, staticRes.Index(si))
				si++
			}
			ti++
		} else {
			values = append(values, dataRes.Index(di))
			di++
		}
		names = append(names, p.Name)
	}
	return abi.NewResult(values, names), nil
}

// isHashedTopic returns true for types that are stored in topics as the
// Keccak-256 hash of their encoding.
func isHashedTopic(p abi.ParamType) bool {
	return p.Type == "string" || p.Type == "bytes" || p.IsTuple() || strings.HasSuffix(p.Type, "]")
}

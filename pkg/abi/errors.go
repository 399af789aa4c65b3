package abi

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	// ErrUnexpectedCharacter is returned when a type string contains a
	// character that is not allowed at its position.
	ErrUnexpectedCharacter = errors.New("unexpected character")
	// ErrUnexpectedEOF is returned for type strings with unclosed nesting.
	ErrUnexpectedEOF = errors.New("unexpected eof")
	// ErrUnbalancedParenthesis is returned when a parameter list has more
	// closing parentheses than opening ones.
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	// ErrInvalidIdentifier is returned for function and event names that
	// are not valid identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrInvalidSignature is returned for malformed function or event
	// signatures.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrTooDeep is returned when a type is nested deeper than allowed.
	ErrTooDeep = errors.New("type nesting is too deep")
)

// Type resolution errors.
var (
	// ErrInvalidType is returned for unknown type strings.
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidBitLength is returned for integer types with a bad width.
	ErrInvalidBitLength = errors.New("invalid bit length")
	// ErrInvalidBytesLength is returned for bytesN types with a bad width.
	ErrInvalidBytesLength = errors.New("invalid bytes length")
)

// Value validation errors.
var (
	// ErrOutOfBounds is returned when a number does not fit its type.
	ErrOutOfBounds = errors.New("value out-of-bounds")
	// ErrInvalidValue is returned when a value can't be converted to the
	// type expected by a coder.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidArray is returned when a non-array value is given to an
	// array coder.
	ErrInvalidArray = errors.New("expected array value")
	// ErrInvalidTuple is returned when a tuple value is neither a list nor
	// a keyed object.
	ErrInvalidTuple = errors.New("invalid tuple value")
	// ErrCountMismatch is returned when the number of values doesn't match
	// the number of types.
	ErrCountMismatch = errors.New("count mismatch")
)

// Decoding errors.
var (
	// ErrInsufficientData is returned when there is not enough data left to
	// decode a value.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrLengthTooLarge is returned when a decoded length or offset can't be
	// represented as an int.
	ErrLengthTooLarge = errors.New("length too large")
	// ErrInvalidUTF8 is returned for malformed UTF-8 string data.
	ErrInvalidUTF8 = errors.New("invalid utf8 byte sequence")
)

// ArgumentError carries the context of a value-related encoding or decoding
// failure: the argument (parameter) name, the coder type name and the
// offending value.
type ArgumentError struct {
	Arg       string
	CoderType string
	Value     any
	Reason    string
	Err       error
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	var msg = e.Reason
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Arg != "" {
		msg += fmt.Sprintf(" (arg=%q, coderType=%q, value=%v)", e.Arg, e.CoderType, e.Value)
	} else {
		msg += fmt.Sprintf(" (coderType=%q, value=%v)", e.CoderType, e.Value)
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func argError(err error, reason string, c coder, value any) error {
	return &ArgumentError{
		Arg:       c.localName(),
		CoderType: c.name(),
		Value:     value,
		Reason:    reason,
		Err:       err,
	}
}

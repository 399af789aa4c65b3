package contract

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/storage"
)

// Key prefixes used by SignatureDB.
const (
	prefixMethod byte = 0x01
	prefixEvent  byte = 0x02
)

var (
	// ErrUnknownSelector is returned when there are no known methods
	// matching the selector of the call data.
	ErrUnknownSelector = errors.New("unknown selector")
	// ErrUnknownTopic is returned when there are no known events matching
	// the first log topic.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrAnonymousEvent is returned on attempts to store an anonymous event
	// that can't be found by its topic.
	ErrAnonymousEvent = errors.New("anonymous event")
)

// SignatureDB is a persistent set of known method and event signatures
// indexed by their selectors and topics. It allows to decode call data and
// logs without the contract ABI. Different signatures sharing the same
// selector are all kept.
type SignatureDB struct {
	store storage.Store
	coder *abi.Coder
}

// NewSignatureDB creates a database over the given store, stored signatures
// are parsed with the given coder.
func NewSignatureDB(s storage.Store, c *abi.Coder) *SignatureDB {
	return &SignatureDB{store: s, coder: c}
}

func methodKey(id [SelectorSize]byte, sig string) []byte {
	key := make([]byte, 0, 1+SelectorSize+len(sig))
	key = append(key, prefixMethod)
	key = append(key, id[:]...)
	return append(key, sig...)
}

// eventKey includes the indexed flags of parameters, events sharing the
// signature can differ in them (like ERC-20 and ERC-721 Transfer).
func eventKey(f *abi.Fragment) []byte {
	var (
		id  = EventID(f)
		sig = f.Signature()
		key = make([]byte, 0, 1+len(id)+len(sig)+1+len(f.Inputs))
	)
	key = append(key, prefixEvent)
	key = append(key, id[:]...)
	key = append(key, sig...)
	key = append(key, '/')
	for i := range f.Inputs {
		if f.Inputs[i].Indexed {
			key = append(key, '1')
		} else {
			key = append(key, '0')
		}
	}
	return key
}

// Add stores the function or event. Functions are keyed by the canonical
// signature and events by the canonical signature with indexed flags, so
// adding the same entry again replaces parameter names and modifiers.
func (db *SignatureDB) Add(f *abi.Fragment) error {
	var key []byte
	switch f.Type {
	case abi.FunctionType:
		key = methodKey(MethodID(f), f.Signature())
	case abi.EventType:
		if f.Anonymous {
			return fmt.Errorf("%w: %s", ErrAnonymousEvent, f.Signature())
		}
		key = eventKey(f)
	default:
		return fmt.Errorf("%w: %s", ErrNotFunction, f.Type)
	}
	return db.store.Put(key, []byte(f.String()))
}

// AddSignature parses the human-readable signature and stores it.
func (db *SignatureDB) AddSignature(sig string) (*abi.Fragment, error) {
	f, err := db.coder.ParseSignature(sig)
	if err != nil {
		return nil, err
	}
	if err := db.Add(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// AddInterface stores all methods and non-anonymous events of the interface
// and returns the number of stored entries.
func (db *SignatureDB) AddInterface(iface *Interface) (int, error) {
	var n int
	for i := range iface.Methods {
		if err := db.Add(&iface.Methods[i]); err != nil {
			return n, err
		}
		n++
	}
	for i := range iface.Events {
		if iface.Events[i].Anonymous {
			continue
		}
		if err := db.Add(&iface.Events[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Remove deletes the same function or event.
func (db *SignatureDB) Remove(f *abi.Fragment) error {
	switch f.Type {
	case abi.FunctionType:
		return db.store.Delete(methodKey(MethodID(f), f.Signature()))
	case abi.EventType:
		return db.store.Delete(eventKey(f))
	}
	return fmt.Errorf("%w: %s", ErrNotFunction, f.Type)
}

// Methods returns known functions with the given selector ordered by their
// canonical signatures.
func (db *SignatureDB) Methods(id [SelectorSize]byte) ([]abi.Fragment, error) {
	return db.seek(append([]byte{prefixMethod}, id[:]...))
}

// Events returns known events with the given topic.
func (db *SignatureDB) Events(id [32]byte) ([]abi.Fragment, error) {
	return db.seek(append([]byte{prefixEvent}, id[:]...))
}

// All returns all known functions and events.
func (db *SignatureDB) All() ([]abi.Fragment, error) {
	methods, err := db.seek([]byte{prefixMethod})
	if err != nil {
		return nil, err
	}
	events, err := db.seek([]byte{prefixEvent})
	if err != nil {
		return nil, err
	}
	return append(methods, events...), nil
}

func (db *SignatureDB) seek(prefix []byte) ([]abi.Fragment, error) {
	var (
		res     []abi.Fragment
		iterErr error
	)
	err := db.store.Seek(prefix, func(k, v []byte) bool {
		f, err := db.coder.ParseSignature(string(v))
		if err != nil {
			iterErr = fmt.Errorf("bad entry %q: %w", v, err)
			return false
		}
		res = append(res, f)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, iterErr
}

// DecodeCall finds the method by the selector of the call data and decodes
// its arguments. If there are several methods with the same selector, the
// first one successfully decoding the data is used.
func (db *SignatureDB) DecodeCall(data []byte) (*abi.Fragment, *abi.Result, error) {
	if len(data) < SelectorSize {
		return nil, nil, fmt.Errorf("%w: call data is too short", ErrSelectorMismatch)
	}
	var id [SelectorSize]byte
	copy(id[:], data)
	methods, err := db.Methods(id)
	if err != nil {
		return nil, nil, err
	}
	if len(methods) == 0 {
		return nil, nil, fmt.Errorf("%w: 0x%x", ErrUnknownSelector, id)
	}
	var firstErr error
	for i := range methods {
		res, err := DecodeFunctionCall(db.coder, &methods[i], data)
		if err == nil {
			return &methods[i], res, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, firstErr
}

// DecodeLog finds the event by the first topic and decodes the log. If
// there are several events with the same topic differing in indexed
// parameters, the first one successfully decoding the log is used.
func (db *SignatureDB) DecodeLog(data []byte, topics [][]byte) (*abi.Fragment, *abi.Result, error) {
	if len(topics) == 0 || len(topics[0]) != 32 {
		return nil, nil, fmt.Errorf("%w: no event topic", ErrTopicCount)
	}
	var id [32]byte
	copy(id[:], topics[0])
	events, err := db.Events(id)
	if err != nil {
		return nil, nil, err
	}
	if len(events) == 0 {
		return nil, nil, fmt.Errorf("%w: 0x%x", ErrUnknownTopic, id)
	}
	var firstErr error
	for i := range events {
		res, err := DecodeLog(db.coder, &events[i], data, topics)
		if err == nil {
			return &events[i], res, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, firstErr
}

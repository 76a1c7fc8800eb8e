// Package tag provides an implementation of a nostr tag list: an array of
// byte-string fields whose first element is conventionally a single-letter
// "key", including the accessors the event index needs to read the key and
// first value.
package tag

import "eventindex.orly.dev/pkg/utils"

// The tag position meanings, so they are clear when reading.
const (
	Key = iota
	Value
	Relay
)

// T is a single tag: an ordered, non-unique list of fields.
type T [][]byte

// New creates an empty tag.
func New() T { return T{} }

// NewFromBytes builds a tag from its raw fields.
func NewFromBytes(fields ...[]byte) T { return T(fields) }

// NewFromStrings builds a tag from string fields.
func NewFromStrings(fields ...string) (t T) {
	t = make(T, len(fields))
	for i, f := range fields {
		t[i] = []byte(f)
	}
	return
}

// Len returns the number of fields in the tag.
func (t T) Len() int { return len(t) }

// Key returns the tag's first field, conventionally a single letter name.
func (t T) Key() []byte {
	if len(t) > Key {
		return t[Key]
	}
	return nil
}

// Value returns the tag's second field, the one the index keys on.
func (t T) Value() []byte {
	if len(t) > Value {
		return t[Value]
	}
	return nil
}

// Relay returns the tag's third field, used by some tag kinds ("e", "p") to
// carry a relay hint. The index does not use it.
func (t T) Relay() []byte {
	if len(t) > Relay {
		return t[Relay]
	}
	return nil
}

// IsSingleLetterKey reports whether the tag's key is exactly one letter from
// the supported a-z, A-Z alphabet, the only tags the index keys on.
func (t T) IsSingleLetterKey() bool {
	k := t.Key()
	if len(k) != 1 {
		return false
	}
	return (k[0] >= 'a' && k[0] <= 'z') || (k[0] >= 'A' && k[0] <= 'Z')
}

// Equal reports whether two tags have identical fields.
func (t T) Equal(o T) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !utils.FastEqual(t[i], o[i]) {
			return false
		}
	}
	return true
}

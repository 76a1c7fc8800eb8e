package index

import "encoding/hex"

// TagValueKind discriminates the shapes a TagValue can take.
type TagValueKind uint8

const (
	// TVString is a generic UTF-8 string value.
	TVString TagValueKind = iota
	// TVEventID is a 32-byte event id, as carried by "e" tags.
	TVEventID
	// TVPubkey is a 32-byte x-only public key, as carried by "p" tags.
	TVPubkey
	// TVCoordinate is a parameterized-replaceable coordinate, as carried by
	// "a" tags.
	TVCoordinate
)

// TagValue is a tagged variant over the shapes a tag's first value can take.
// It is a plain comparable struct so sets of TagValues can be represented as
// Go maps keyed directly by TagValue; equality and hashing are therefore
// structural and per-variant by construction (differing Kind values never
// collide because the inactive fields stay at their zero value).
type TagValue struct {
	Kind  TagValueKind
	Str   string
	ID    EventID
	Coord Coordinate
}

// NewStringTagValue wraps a generic string value.
func NewStringTagValue(s string) TagValue { return TagValue{Kind: TVString, Str: s} }

// NewEventIDTagValue wraps a 32-byte event id value.
func NewEventIDTagValue(id EventID) TagValue { return TagValue{Kind: TVEventID, ID: id} }

// NewPubkeyTagValue wraps a 32-byte public key value.
func NewPubkeyTagValue(id EventID) TagValue { return TagValue{Kind: TVPubkey, ID: id} }

// NewCoordinateTagValue wraps a coordinate value.
func NewCoordinateTagValue(c Coordinate) TagValue { return TagValue{Kind: TVCoordinate, Coord: c} }

// tagValueForLetter derives the indexed TagValue for a tag's first value,
// given the single-letter tag name it was found under. "e" and "p" tags hold
// hex-encoded 32-byte ids; "a" tags hold a coordinate triple; everything else
// is indexed as an opaque string. Values that fail to decode to the expected
// shape fall back to the generic string form rather than being dropped, so a
// malformed tag on one event never breaks indexing of the rest of it.
func tagValueForLetter(letter byte, first []byte) TagValue {
	switch letter {
	case 'e':
		if id, ok := decodeHexID(first); ok {
			return NewEventIDTagValue(id)
		}
	case 'p':
		if id, ok := decodeHexID(first); ok {
			return NewPubkeyTagValue(id)
		}
	case 'a':
		if c, ok := ParseCoordinate(string(first)); ok {
			return NewCoordinateTagValue(c)
		}
	}
	return NewStringTagValue(string(first))
}

func decodeHexID(b []byte) (id EventID, ok bool) {
	if len(b) != IDLen*2 {
		return
	}
	dec := make([]byte, IDLen)
	if _, err := hex.Decode(dec, b); err != nil {
		return
	}
	copy(id[:], dec)
	ok = true
	return
}

package index

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"eventindex.orly.dev/pkg/kind"
)

// Coordinate names a parameterized-replaceable slot: the (kind, author,
// identifier) triple that a given "d"-tagged event occupies. It is used by
// address ("a") tags and by coordinate-scoped deletion tombstones.
type Coordinate struct {
	Kind       kind.K
	Pubkey     PubkeyPrefix
	Identifier string
}

// ParseCoordinate decodes the wire form "kind:pubkey-hex:identifier" used by
// "a" tags. The identifier may be empty (trailing colon with nothing after
// it) or absent altogether ("kind:pubkey-hex"), but the kind and pubkey
// fields must be present and well formed.
func ParseCoordinate(s string) (c Coordinate, ok bool) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return
	}
	n, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return
	}
	pkb, err := hex.DecodeString(parts[1])
	if err != nil || len(pkb) < PrefixLen {
		return
	}
	c.Kind = kind.New(n)
	c.Pubkey = NewPubkeyPrefix(pkb)
	if len(parts) == 3 {
		c.Identifier = parts[2]
	}
	ok = true
	return
}

// String renders the coordinate back to its wire form, using the author
// prefix since the full pubkey is not retained by the index.
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%x:%s", c.Kind.ToU16(), c.Pubkey[:], c.Identifier)
}

// ToPredicate lowers a coordinate to the filter predicate that selects its
// occupant: the author, the kind, and, if present, the "d" tag identifier.
func (c Coordinate) ToPredicate() *FilterPredicate {
	p := &FilterPredicate{
		Authors: map[PubkeyPrefix]struct{}{c.Pubkey: {}},
		Kinds:   map[kind.K]struct{}{c.Kind: {}},
	}
	if c.Identifier != "" {
		p.GenericTags = map[byte]map[TagValue]struct{}{
			'd': {NewStringTagValue(c.Identifier): {}},
		}
	}
	return p
}

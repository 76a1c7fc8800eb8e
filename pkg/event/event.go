// Package event defines E, the concrete nostr event shape that implements
// index.RawEvent, along with the protocol helpers (kind classification, tag
// decoding) the admission engine needs to evaluate it. Cryptographic
// signature verification is the validator's job, not this package's - by
// the time an E reaches the index it is assumed already verified.
package event

import (
	"encoding/hex"

	"eventindex.orly.dev/pkg/index"
	"eventindex.orly.dev/pkg/kind"
	"eventindex.orly.dev/pkg/tag"
)

// E is the primary datatype of nostr: a signed, timestamped, tagged note.
type E struct {
	// Id is the SHA256 hash of the canonical encoding of the event.
	Id []byte
	// PubkeyBytes is the public key of the event creator, in binary form.
	PubkeyBytes []byte
	// CreatedAtUnix is the UNIX timestamp the event creator claims.
	CreatedAtUnix int64
	// KindNum is the nostr protocol code classifying the event.
	KindNum kind.K
	// TagList is the event's tag list.
	TagList tag.S
	// Content is the arbitrary event payload.
	Content []byte
	// Sig is the signature on Id; already verified by the caller.
	Sig []byte

	// ExpiresAt, if non-zero, is the UNIX timestamp of an "expiration" tag.
	ExpiresAt int64
}

// S sorts a slice of *E in the index's total order: newer first, ties
// broken by id ascending.
type S []*E

func (s S) Len() int      { return len(s) }
func (s S) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s S) Less(i, j int) bool {
	if s[i].CreatedAtUnix != s[j].CreatedAtUnix {
		return s[i].CreatedAtUnix > s[j].CreatedAtUnix
	}
	for k := range s[i].Id {
		if s[i].Id[k] != s[j].Id[k] {
			return s[i].Id[k] < s[j].Id[k]
		}
	}
	return false
}

// ID returns the event's id as an index.EventID, failing if Id is not
// exactly 32 bytes.
func (e *E) ID() (index.EventID, error) { return index.NewEventID(e.Id) }

// Pubkey returns the index's compact author handle for this event.
func (e *E) Pubkey() index.PubkeyPrefix { return index.NewPubkeyPrefix(e.PubkeyBytes) }

// Kind returns the event's kind.
func (e *E) Kind() kind.K { return e.KindNum }

// CreatedAt returns the event's created_at.
func (e *E) CreatedAt() int64 { return e.CreatedAtUnix }

// Tags builds the TagIndex for this event.
func (e *E) Tags() *index.TagIndex { return index.NewTagIndex(e.TagList) }

// IsEphemeral reports whether the event's kind is never indexed.
func (e *E) IsEphemeral() bool { return kind.IsEphemeral(e.KindNum) }

// IsExpired reports whether the event carries an "expiration" tag whose
// timestamp is at or before now.
func (e *E) IsExpired(now int64) bool {
	return e.ExpiresAt > 0 && e.ExpiresAt <= now
}

// IsReplaceable reports whether the event's kind keeps at most one record
// per (author, kind).
func (e *E) IsReplaceable() bool { return kind.IsReplaceable(e.KindNum) }

// IsParameterizedReplaceable reports whether the event's kind keeps at most
// one record per (author, kind, identifier).
func (e *E) IsParameterizedReplaceable() bool {
	return kind.IsParameterizedReplaceable(e.KindNum)
}

// Identifier returns the first value of the event's "d" tag, or nil.
func (e *E) Identifier() []byte {
	d := e.TagList.GetFirst([]byte("d"))
	if d == nil {
		return nil
	}
	return d.Value()
}

// EventIDs decodes the referenced ids of the event's "e" tags, skipping any
// that fail to decode rather than failing the whole event.
func (e *E) EventIDs() (out []index.EventID) {
	for _, t := range e.TagList.GetAll([]byte("e")) {
		id, err := decodeHexID(t.Value())
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return
}

// Coordinates decodes the event's "a" tags into index.Coordinate values,
// skipping any that fail to parse.
func (e *E) Coordinates() (out []index.Coordinate) {
	for _, t := range e.TagList.GetAll([]byte("a")) {
		c, ok := index.ParseCoordinate(string(t.Value()))
		if !ok {
			continue
		}
		out = append(out, c)
	}
	return
}

func decodeHexID(b []byte) (id index.EventID, err error) {
	dec := make([]byte, hex.DecodedLen(len(b)))
	n, err := hex.Decode(dec, b)
	if err != nil {
		return id, err
	}
	return index.NewEventID(dec[:n])
}

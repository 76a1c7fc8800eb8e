package index

import (
	"encoding/hex"

	"eventindex.orly.dev/pkg/kind"
	"eventindex.orly.dev/pkg/tag"
	"lukechampine.com/frand"
)

// fakeEvent is a minimal RawEvent used to drive the admission engine and
// store tests without pulling in the event package's encoding concerns.
type fakeEvent struct {
	id         EventID
	pubkey     PubkeyPrefix
	kind       kind.K
	createdAt  int64
	tags       tag.S
	ephemeral  bool
	expiresAt  int64
	identifier []byte
	eventIDs   []EventID
	coords     []Coordinate
}

func (f *fakeEvent) ID() (EventID, error)     { return f.id, nil }
func (f *fakeEvent) Pubkey() PubkeyPrefix     { return f.pubkey }
func (f *fakeEvent) Kind() kind.K             { return f.kind }
func (f *fakeEvent) CreatedAt() int64         { return f.createdAt }
func (f *fakeEvent) Tags() *TagIndex          { return NewTagIndex(f.tags) }
func (f *fakeEvent) IsEphemeral() bool        { return f.ephemeral || kind.IsEphemeral(f.kind) }
func (f *fakeEvent) IsExpired(now int64) bool { return f.expiresAt > 0 && f.expiresAt <= now }
func (f *fakeEvent) IsReplaceable() bool      { return kind.IsReplaceable(f.kind) }
func (f *fakeEvent) IsParameterizedReplaceable() bool {
	return kind.IsParameterizedReplaceable(f.kind)
}
func (f *fakeEvent) Identifier() []byte        { return f.identifier }
func (f *fakeEvent) EventIDs() []EventID       { return f.eventIDs }
func (f *fakeEvent) Coordinates() []Coordinate { return f.coords }

func randID() (id EventID) {
	copy(id[:], frand.Bytes(IDLen))
	return
}

func idFromHex(s string) EventID {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	var id EventID
	copy(id[:], b)
	return id
}

func pubkeyN(n byte) (p PubkeyPrefix) {
	for i := range p {
		p[i] = n
	}
	return
}

func newTextNote(author PubkeyPrefix, createdAt int64) *fakeEvent {
	return &fakeEvent{
		id:        randID(),
		pubkey:    author,
		kind:      kind.TextNote,
		createdAt: createdAt,
	}
}

func newReplaceable(k kind.K, author PubkeyPrefix, createdAt int64) *fakeEvent {
	return &fakeEvent{
		id:        randID(),
		pubkey:    author,
		kind:      k,
		createdAt: createdAt,
	}
}

func newParamReplaceable(k kind.K, author PubkeyPrefix, createdAt int64, d string) *fakeEvent {
	return &fakeEvent{
		id:         randID(),
		pubkey:     author,
		kind:       k,
		createdAt:  createdAt,
		identifier: []byte(d),
		tags: tag.S{
			tag.NewFromStrings("d", d),
		},
	}
}

func newDeletion(author PubkeyPrefix, createdAt int64, eids []EventID, coords []Coordinate) *fakeEvent {
	return &fakeEvent{
		id:        randID(),
		pubkey:    author,
		kind:      kind.EventDeletion,
		createdAt: createdAt,
		eventIDs:  eids,
		coords:    coords,
	}
}

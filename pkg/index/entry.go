package index

import "eventindex.orly.dev/pkg/kind"

// EventIndexEntry is the compact record the index keeps per stored event.
type EventIndexEntry struct {
	CreatedAt int64
	ID        EventID
	Pubkey    PubkeyPrefix
	Kind      kind.K
	Tags      *TagIndex
}

// Less defines the entry total order: created_at descending (newer first),
// tie-broken by id ascending. This is the order the ordered collection
// stores entries in and the order queries return ids in.
func (e *EventIndexEntry) Less(o *EventIndexEntry) bool {
	if e.CreatedAt != o.CreatedAt {
		return e.CreatedAt > o.CreatedAt
	}
	return e.ID.Compare(o.ID) < 0
}

// Equal reports structural equality across all fields of the entry save the
// tag index, which is derived from the event and so implied by the rest.
func (e *EventIndexEntry) Equal(o *EventIndexEntry) bool {
	return e.CreatedAt == o.CreatedAt && e.ID == o.ID &&
		e.Pubkey == o.Pubkey && e.Kind == o.Kind
}

// RawEvent is the boundary shape the admission engine consumes. It is
// satisfied by any caller's concrete event type; the index never constructs
// one itself. Every helper mirrors a protocol rule the admission engine
// needs and none of them require cryptographic verification, which is a
// prerequisite the caller has already satisfied.
type RawEvent interface {
	ID() (EventID, error)
	Pubkey() PubkeyPrefix
	Kind() kind.K
	CreatedAt() int64
	Tags() *TagIndex

	IsEphemeral() bool
	IsExpired(now int64) bool
	IsReplaceable() bool
	IsParameterizedReplaceable() bool

	// Identifier returns the first value of the "d" tag, or nil if absent.
	Identifier() []byte
	// EventIDs returns the referenced ids of "e" tags, in tag order.
	EventIDs() []EventID
	// Coordinates returns the decoded coordinates of "a" tags, in tag order.
	Coordinates() []Coordinate
}

// entryFromRawEvent builds the index's internal record from a RawEvent.
func entryFromRawEvent(ev RawEvent) (e *EventIndexEntry, err error) {
	id, err := ev.ID()
	if err != nil {
		return
	}
	e = &EventIndexEntry{
		CreatedAt: ev.CreatedAt(),
		ID:        id,
		Pubkey:    ev.Pubkey(),
		Kind:      ev.Kind(),
		Tags:      ev.Tags(),
	}
	return
}

package index

import (
	"context"

	"eventindex.orly.dev/pkg/kind"
	"lol.mleku.dev/chk"
	"lol.mleku.dev/log"
)

// AdmissionEngine applies the protocol's replacement and deletion rules to
// decide, for each incoming event, whether it should be stored and which
// previously stored events it forces out. It never constructs an Index of
// its own; it borrows the write lock of the one it is given for the
// duration of each decision, so admission's pre-mutation scans and the
// mutation that follows them are always one atomic step from every other
// caller's point of view.
type AdmissionEngine struct {
	idx *Index
}

// NewAdmissionEngine builds an AdmissionEngine over idx.
func NewAdmissionEngine(idx *Index) *AdmissionEngine { return &AdmissionEngine{idx: idx} }

// IndexEvent decides whether ev should be stored and which existing entries
// it discards, then applies that decision to the index before returning.
// Malformed id bytes fail with ErrInvalidEventID and leave the index
// unmutated; every other branch is total.
func (ae *AdmissionEngine) IndexEvent(ctx context.Context, ev RawEvent, now int64) (store bool, discard map[EventID]struct{}, err error) {
	idx := ae.idx
	idx.mu.Lock()
	defer idx.mu.Unlock()

	id, err := ev.ID()
	if chk.E(err) {
		return false, nil, err
	}
	discard = make(map[EventID]struct{})

	// Pre-filter: ephemeral events never enter the index at all.
	if ev.IsEphemeral() {
		return false, discard, nil
	}
	// Pre-filter: expired events are handed back for the caller's durable
	// store to drop too.
	if ev.IsExpired(now) {
		discard[id] = struct{}{}
		return false, discard, nil
	}
	// Already-tombstoned events never get re-admitted.
	if _, dead := idx.tombstoned[id]; dead {
		discard[id] = struct{}{}
		return false, discard, nil
	}
	// An id already live in the index is already stored; re-admitting it
	// is a no-op rather than a fresh store.
	if _, exists := idx.byID[id]; exists {
		return false, discard, nil
	}

	createdAt := ev.CreatedAt()
	k := ev.Kind()
	prefix := ev.Pubkey()
	store = true

	switch {
	case ev.IsReplaceable():
		pred := &FilterPredicate{
			Authors: map[PubkeyPrefix]struct{}{prefix: {}},
			Kinds:   map[kind.K]struct{}{k: {}},
		}
		for _, e := range idx.scanOrderedLocked(pred) {
			if e.CreatedAt > createdAt {
				// The new event loses; the existing one is kept.
				store = false
			} else {
				// Existing entry is no newer; on an exact tie the
				// newcomer wins.
				discard[e.ID] = struct{}{}
			}
		}

	case ev.IsParameterizedReplaceable():
		identifier := ev.Identifier()
		if len(identifier) == 0 {
			store = false
			break
		}
		pred := &FilterPredicate{
			Authors: map[PubkeyPrefix]struct{}{prefix: {}},
			Kinds:   map[kind.K]struct{}{k: {}},
			GenericTags: map[byte]map[TagValue]struct{}{
				'd': {NewStringTagValue(string(identifier)): {}},
			},
		}
		for _, e := range idx.scanOrderedLocked(pred) {
			if e.CreatedAt >= createdAt {
				// Ties favor the incumbent here, the opposite of the
				// plain-replaceable rule above. See DESIGN.md Open
				// Question 2.
				store = false
			} else {
				discard[e.ID] = struct{}{}
			}
		}

	case kind.IsDeletion(k):
		if err = ae.applyDeletion(ctx, ev, prefix, createdAt, discard); chk.E(err) {
			return false, discard, err
		}
		// A deletion event is a normal event for storage purposes; rules
		// 3/4 above never apply to it.

	default:
		// All other kinds store unconditionally, subject to the
		// duplicate-id check above.
	}

	for deadID := range discard {
		idx.removeLocked(deadID)
		idx.tombstoned[deadID] = struct{}{}
	}
	if store {
		e, eerr := entryFromRawEvent(ev)
		if chk.E(eerr) {
			return false, discard, eerr
		}
		idx.insertLocked(e)
	}
	return store, discard, nil
}

// applyDeletion handles the event-deletion kind: tombstoning referenced
// event ids and coordinates the deletion's author actually owns. The caller
// must hold the index's write lock.
func (ae *AdmissionEngine) applyDeletion(
	ctx context.Context, ev RawEvent, author PubkeyPrefix, until int64,
	discard map[EventID]struct{},
) error {
	idx := ae.idx

	if eids := ev.EventIDs(); len(eids) > 0 {
		idSet := make(map[EventID]struct{}, len(eids))
		for _, id := range eids {
			idSet[id] = struct{}{}
		}
		pred := &FilterPredicate{IDs: idSet, Until: &until}
		matches, err := idx.scanParallelLocked(ctx, pred)
		if err != nil {
			return err
		}
		for _, e := range matches {
			if e.Pubkey == author {
				discard[e.ID] = struct{}{}
			}
		}
	}

	for _, coord := range ev.Coordinates() {
		// The deletion's author must own the coordinate, matching the
		// policy fixed in DESIGN.md Open Question 3.
		if coord.Pubkey != author {
			continue
		}
		if prev, ok := idx.deletedCoordinates[coord]; !ok || until > prev {
			idx.deletedCoordinates[coord] = until
		}
		pred := coord.ToPredicate()
		pred.Until = &until
		matches, err := idx.scanParallelLocked(ctx, pred)
		if err != nil {
			return err
		}
		for _, e := range matches {
			discard[e.ID] = struct{}{}
		}
	}
	return nil
}

// BulkIndex admits a batch of events, returning the union of every
// individual decision's discard set. An event that fails admission is
// skipped and logged; it never aborts the rest of the batch.
func (ae *AdmissionEngine) BulkIndex(ctx context.Context, evs []RawEvent, now int64) map[EventID]struct{} {
	union := make(map[EventID]struct{})
	for _, ev := range evs {
		_, discard, err := ae.IndexEvent(ctx, ev, now)
		if err != nil {
			log.W.F("bulk_index: skipping event: %s", err)
			continue
		}
		for id := range discard {
			union[id] = struct{}{}
		}
	}
	return union
}

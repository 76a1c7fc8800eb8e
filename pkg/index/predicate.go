package index

import "eventindex.orly.dev/pkg/kind"

// Filter is the external, uncompiled query shape a caller builds. Every
// field is optional; a present field narrows the match, an absent one
// imposes no constraint. GenericTags maps a tag letter to the set of
// acceptable first values for that letter.
type Filter struct {
	IDs         map[EventID]struct{}
	Authors     map[PubkeyPrefix]struct{}
	Kinds       map[kind.K]struct{}
	Since       *int64
	Until       *int64
	GenericTags map[byte]map[TagValue]struct{}
	Limit       *int
}

// IsEmpty reports whether the filter has no constraints at all, in which
// case it matches every entry.
func (f *Filter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.IDs) == 0 && len(f.Authors) == 0 && len(f.Kinds) == 0 &&
		f.Since == nil && f.Until == nil && len(f.GenericTags) == 0
}

// FilterPredicate is a compiled Filter: the same sets and bounds, ready to be
// evaluated against entries without re-deriving anything from the Filter
// each time. Compile is a pure, allocation-cheap lowering step so the same
// machinery can drive both admission replacement checks and queries.
type FilterPredicate struct {
	IDs         map[EventID]struct{}
	Authors     map[PubkeyPrefix]struct{}
	Kinds       map[kind.K]struct{}
	Since       *int64
	Until       *int64
	GenericTags map[byte]map[TagValue]struct{}
	Limit       *int
}

// Compile lowers a Filter into a FilterPredicate. The returned predicate
// shares the filter's sets rather than copying them, since predicates are
// read-only for their lifetime.
func Compile(f *Filter) *FilterPredicate {
	if f == nil {
		return &FilterPredicate{}
	}
	return &FilterPredicate{
		IDs:         f.IDs,
		Authors:     f.Authors,
		Kinds:       f.Kinds,
		Since:       f.Since,
		Until:       f.Until,
		GenericTags: f.GenericTags,
		Limit:       f.Limit,
	}
}

// IsEmpty reports whether the predicate carries no constraints.
func (p *FilterPredicate) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.IDs) == 0 && len(p.Authors) == 0 && len(p.Kinds) == 0 &&
		p.Since == nil && p.Until == nil && len(p.GenericTags) == 0
}

// IsUnsatisfiable reports whether the predicate's own bounds make it
// impossible for any entry to match, namely since > until.
func (p *FilterPredicate) IsUnsatisfiable() bool {
	if p == nil || p.Since == nil || p.Until == nil {
		return false
	}
	return *p.Since > *p.Until
}

// Matches reports whether entry satisfies every constraint present on the
// predicate. An empty predicate matches everything. Tombstone exclusion is
// the caller's (the Index's) responsibility, not the predicate's.
func (p *FilterPredicate) Matches(e *EventIndexEntry) bool {
	if p == nil {
		return true
	}
	if len(p.IDs) > 0 {
		if _, ok := p.IDs[e.ID]; !ok {
			return false
		}
	}
	if len(p.Authors) > 0 {
		if _, ok := p.Authors[e.Pubkey]; !ok {
			return false
		}
	}
	if len(p.Kinds) > 0 {
		if _, ok := p.Kinds[e.Kind]; !ok {
			return false
		}
	}
	if p.Since != nil && e.CreatedAt < *p.Since {
		return false
	}
	if p.Until != nil && e.CreatedAt > *p.Until {
		return false
	}
	for letter, vals := range p.GenericTags {
		if !e.Tags.Has(letter, vals) {
			return false
		}
	}
	return true
}

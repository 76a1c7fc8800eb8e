package index

import "eventindex.orly.dev/pkg/tag"

// TagIndex answers "does this event carry a tag named X whose first value
// lies in set S?" for a single event. Construction is the only way to
// populate it; it is immutable afterward.
type TagIndex struct {
	byLetter map[byte]map[TagValue]struct{}
}

// NewTagIndex builds a TagIndex from an event's tag list. For each tag whose
// name is a single letter in a-z, A-Z, the tag's first value is inserted into
// the set keyed by that letter. Tags with an empty first value, or whose name
// is not a single letter, are ignored.
func NewTagIndex(tags tag.S) *TagIndex {
	ti := &TagIndex{byLetter: make(map[byte]map[TagValue]struct{})}
	for _, t := range tags {
		if !t.IsSingleLetterKey() {
			continue
		}
		first := t.Value()
		if len(first) == 0 {
			continue
		}
		letter := t.Key()[0]
		v := tagValueForLetter(letter, first)
		set, ok := ti.byLetter[letter]
		if !ok {
			set = make(map[TagValue]struct{})
			ti.byLetter[letter] = set
		}
		set[v] = struct{}{}
	}
	return ti
}

// Get returns the value set indexed under the given letter, or nil if the
// event carries no such tag.
func (ti *TagIndex) Get(letter byte) map[TagValue]struct{} {
	if ti == nil {
		return nil
	}
	return ti.byLetter[letter]
}

// Has reports whether the event carries tag letter with first value in vals.
func (ti *TagIndex) Has(letter byte, vals map[TagValue]struct{}) bool {
	set := ti.Get(letter)
	if set == nil {
		return false
	}
	for v := range vals {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

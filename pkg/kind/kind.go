// Package kind includes a type for convenient handling of nostr event kinds,
// and the classification predicates the event index relies on to decide
// ephemerality, replacement and deletion semantics.
package kind

import "golang.org/x/exp/constraints"

// K is the event kind discriminator. The use of the capital K signifying
// type is consistent with Go idiom and the rest of this module.
type K uint16

// New creates a K from any integer type. Values of 2^16 or more truncate.
func New[V constraints.Integer](k V) K { return K(uint16(k)) }

// ToU16 returns the native form of the kind.
func (k K) ToU16() uint16 { return uint16(k) }

// ToInt returns the kind widened to an int.
func (k K) ToInt() int { return int(k) }

// Equal reports whether k and k2 denote the same kind.
func (k K) Equal(k2 K) bool { return k == k2 }

// Well-known kind numbers referenced directly by the admission and
// classification logic.
const (
	ProfileMetadata K = 0
	TextNote        K = 1
	FollowList      K = 3
	EventDeletion   K = 5

	ReplaceableStart K = 10000
	ReplaceableEnd   K = 20000

	EphemeralStart K = 20000
	EphemeralEnd   K = 30000

	ParameterizedReplaceableStart K = 30000
	ParameterizedReplaceableEnd   K = 40000
)

// IsEphemeral returns true if the kind is never indexed or stored.
func IsEphemeral(k K) bool { return k >= EphemeralStart && k < EphemeralEnd }

// IsReplaceable returns true if at most one event may exist for a given
// (author, kind) pair - the newest created_at wins.
func IsReplaceable(k K) bool {
	return k == ProfileMetadata || k == FollowList ||
		(k >= ReplaceableStart && k < ReplaceableEnd)
}

// IsParameterizedReplaceable returns true if at most one event may exist for
// a given (author, kind, identifier) triple, the identifier being the first
// value of the event's "d" tag.
func IsParameterizedReplaceable(k K) bool {
	return k >= ParameterizedReplaceableStart && k < ParameterizedReplaceableEnd
}

// IsDeletion returns true if k is the distinguished event-deletion kind.
func IsDeletion(k K) bool { return k == EventDeletion }

package tag

import "eventindex.orly.dev/pkg/utils"

// S is an event's full tag list, in the order they appeared on the event.
type S []T

// NewS creates an S from the given tags.
func NewS(t ...T) S { return S(t) }

// GetFirst returns the first tag whose key equals name, or nil.
func (s S) GetFirst(name []byte) T {
	for _, t := range s {
		if utils.FastEqual(t.Key(), name) {
			return t
		}
	}
	return nil
}

// GetAll returns every tag whose key equals name, in order.
func (s S) GetAll(name []byte) (out []T) {
	for _, t := range s {
		if utils.FastEqual(t.Key(), name) {
			out = append(out, t)
		}
	}
	return
}

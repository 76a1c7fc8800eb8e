package index

import (
	"context"
	"testing"

	"eventindex.orly.dev/pkg/kind"
)

// TestMixedKindFixtureScenario replays the canonical seven-event fixture: two
// authors, a mix of a plain text note and several parameterized-replaceable
// kinds sharing identifiers, followed by a deletion from the wrong author and
// then the right one targeting a coordinate.
func TestMixedKindFixtureScenario(t *testing.T) {
	idx := New()
	ae := NewAdmissionEngine(idx)
	ctx := context.Background()
	a := pubkeyN(0xaa)
	b := pubkeyN(0xbb)

	const (
		k32121 kind.K = 32121
		k32122 kind.K = 32122
	)

	events := []*fakeEvent{
		newTextNote(a, 1),
		newParamReplaceable(k32121, a, 2, "abdefgh:12345678"),
		newParamReplaceable(k32122, a, 3, "abdefgh:12345678"),
		newParamReplaceable(k32122, a, 4, "ijklmnop:87654321"),
		newParamReplaceable(k32122, b, 5, "abdefgh:87654321"),
		newParamReplaceable(k32122, b, 6, "abdefgh:12345678"),
		newParamReplaceable(k32122, a, 7, "abdefgh:12345678"), // replaces event 3
	}
	for _, ev := range events {
		if _, _, err := ae.IndexEvent(ctx, ev, 1000); err != nil {
			t.Fatalf("unexpected admission error: %s", err)
		}
	}

	if got := idx.Len(); got != 6 {
		t.Fatalf("expected 6 live entries after the fixture, got %d", got)
	}

	// A deletion from author B naming a coordinate owned by A must not
	// remove anything; the deletion event itself is still stored.
	wrongCoord := Coordinate{Kind: k32122, Pubkey: a, Identifier: "abdefgh:12345678"}
	wrongDel := newDeletion(b, 8, nil, []Coordinate{wrongCoord})
	if _, _, err := ae.IndexEvent(ctx, wrongDel, 1000); err != nil {
		t.Fatalf("unexpected admission error: %s", err)
	}
	if got := idx.Len(); got != 7 {
		t.Fatalf("expected 7 live entries after the mismatched-author deletion, got %d", got)
	}

	// A deletion from A targeting the coordinate it actually owns removes
	// the matching entry and is itself stored.
	rightCoord := Coordinate{Kind: k32122, Pubkey: a, Identifier: "ijklmnop:87654321"}
	rightDel := newDeletion(a, 9, nil, []Coordinate{rightCoord})
	if _, _, err := ae.IndexEvent(ctx, rightDel, 1000); err != nil {
		t.Fatalf("unexpected admission error: %s", err)
	}
	if got := idx.Len(); got != 7 {
		t.Fatalf("expected 7 live entries after the owning deletion (7 - 1 + 1), got %d", got)
	}

	ids, err := idx.Query(ctx, []*Filter{{}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	count, err := idx.Count(ctx, []*Filter{{}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(ids) != count {
		t.Fatalf("expected query length %d to equal count %d", len(ids), count)
	}
}

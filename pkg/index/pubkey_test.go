package index

import "testing"

func TestPubkeyPrefixZeroPadsShortInput(t *testing.T) {
	p := NewPubkeyPrefix([]byte{1, 2, 3})
	want := PubkeyPrefix{1, 2, 3, 0, 0, 0, 0, 0}
	if p != want {
		t.Fatalf("expected short input zero-padded on the right, got %v", p)
	}
}

func TestPubkeyPrefixTruncatesLongInput(t *testing.T) {
	full := make([]byte, 32)
	for i := range full {
		full[i] = byte(i)
	}
	p := NewPubkeyPrefix(full)
	for i := 0; i < PrefixLen; i++ {
		if p[i] != byte(i) {
			t.Fatalf("expected prefix to take the leading %d bytes, got %v", PrefixLen, p)
		}
	}
}

func TestPubkeyPrefixEqual(t *testing.T) {
	a := pubkeyN(5)
	b := pubkeyN(5)
	c := pubkeyN(6)
	if !a.Equal(b) {
		t.Fatal("expected identical prefixes to be equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing prefixes to be unequal")
	}
}

func TestPubkeyPrefixCompareOrdersLexicographically(t *testing.T) {
	a := pubkeyN(1)
	b := pubkeyN(2)
	if a.Compare(b) >= 0 {
		t.Fatalf("expected pubkeyN(1) to sort before pubkeyN(2)")
	}
	if b.Compare(a) <= 0 {
		t.Fatalf("expected pubkeyN(2) to sort after pubkeyN(1)")
	}
	if a.Compare(a) != 0 {
		t.Fatalf("expected a prefix to compare equal to itself")
	}
}

package tag

import "testing"

func TestGetFirstGetAll(t *testing.T) {
	s := NewS(
		NewFromStrings("e", "aaaa"),
		NewFromStrings("p", "bbbb"),
		NewFromStrings("e", "cccc"),
		NewFromStrings("zz", "ignored"),
	)
	first := s.GetFirst([]byte("e"))
	if first == nil || string(first.Value()) != "aaaa" {
		t.Fatalf("expected first e tag value aaaa, got %v", first)
	}
	all := s.GetAll([]byte("e"))
	if len(all) != 2 {
		t.Fatalf("expected 2 e tags, got %d", len(all))
	}
	if s.GetFirst([]byte("x")) != nil {
		t.Fatalf("expected no match for absent tag key")
	}
}

func TestIsSingleLetterKey(t *testing.T) {
	if !NewFromStrings("d", "x").IsSingleLetterKey() {
		t.Fatal("expected d to be a single letter key")
	}
	if NewFromStrings("zz", "x").IsSingleLetterKey() {
		t.Fatal("expected zz to not be a single letter key")
	}
	if New().IsSingleLetterKey() {
		t.Fatal("expected empty tag to not be a single letter key")
	}
}

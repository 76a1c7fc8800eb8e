package kind

import "testing"

func TestClassification(t *testing.T) {
	cases := []struct {
		name                 string
		k                    K
		ephemeral            bool
		replaceable          bool
		paramReplaceable     bool
		deletion             bool
	}{
		{"profile_metadata", ProfileMetadata, false, true, false, false},
		{"text_note", TextNote, false, false, false, false},
		{"follow_list", FollowList, false, true, false, false},
		{"event_deletion", EventDeletion, false, false, false, true},
		{"replaceable_range_start", ReplaceableStart, false, true, false, false},
		{"replaceable_range_last", ReplaceableEnd - 1, false, true, false, false},
		{"ephemeral_range_start", EphemeralStart, true, false, false, false},
		{"ephemeral_range_last", EphemeralEnd - 1, true, false, false, false},
		{"param_replaceable_range_start", ParameterizedReplaceableStart, false, false, true, false},
		{"param_replaceable_range_last", ParameterizedReplaceableEnd - 1, false, false, true, false},
		{"just_above_param_replaceable", ParameterizedReplaceableEnd, false, false, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsEphemeral(c.k); got != c.ephemeral {
				t.Errorf("IsEphemeral(%d) = %v, want %v", c.k, got, c.ephemeral)
			}
			if got := IsReplaceable(c.k); got != c.replaceable {
				t.Errorf("IsReplaceable(%d) = %v, want %v", c.k, got, c.replaceable)
			}
			if got := IsParameterizedReplaceable(c.k); got != c.paramReplaceable {
				t.Errorf("IsParameterizedReplaceable(%d) = %v, want %v", c.k, got, c.paramReplaceable)
			}
			if got := IsDeletion(c.k); got != c.deletion {
				t.Errorf("IsDeletion(%d) = %v, want %v", c.k, got, c.deletion)
			}
		})
	}
}

func TestNewTruncates(t *testing.T) {
	if got := New(70000); got.ToInt() != 70000-65536 {
		t.Errorf("New(70000) = %d, want truncation to uint16 wraparound %d", got.ToInt(), 70000-65536)
	}
	if got := New(1); got != TextNote {
		t.Errorf("New(1) = %d, want %d", got, TextNote)
	}
}

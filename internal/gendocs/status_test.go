package gendocs

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusReviewed, true},
		{StatusReviewed, StatusSent, true},
		{StatusDraft, StatusSent, false},
		{StatusReviewed, StatusDraft, false},
		{StatusSent, StatusReviewed, false},
		{StatusSent, StatusDraft, false},
		{StatusSent, StatusSent, false},
		{StatusDraft, StatusDraft, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if s, ok := NormalizeStatus(" Reviewed "); !ok || s != StatusReviewed {
		t.Errorf("expected reviewed, got %q ok=%v", s, ok)
	}
	if _, ok := NormalizeStatus("approved"); ok {
		t.Error("expected unknown status to be rejected")
	}
}

func TestStatusEditable(t *testing.T) {
	if !StatusDraft.Editable() || !StatusReviewed.Editable() {
		t.Error("draft and reviewed must be editable")
	}
	if StatusSent.Editable() {
		t.Error("sent must not be editable")
	}
}

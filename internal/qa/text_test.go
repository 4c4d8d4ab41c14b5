package qa

import (
	"reflect"
	"testing"
)

func TestSentences(t *testing.T) {
	t.Parallel()
	in := "First sentence is long enough here!!! Too short. Second   sentence\nspans two lines?  Third one is also long enough..."
	want := []string{
		"First sentence is long enough here",
		"Second sentence spans two lines",
		"Third one is also long enough",
	}
	if got := Sentences(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences() = %#v, want %#v", got, want)
	}
	if got := Sentences("   "); got != nil {
		t.Fatalf("expected no sentences, got %#v", got)
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want []string
	}{
		{"What is the Capital of France?", []string{"capital", "france"}},
		{"who won in 2024, and why?", []string{"won", "2024", "and"}},
		{"Tax tax TAX", []string{"tax", "tax", "tax"}},
		{"a an of", nil},
	}
	for _, tt := range tests {
		if got := Keywords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Keywords(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestOrderedSet(t *testing.T) {
	t.Parallel()
	s := newOrderedSet()
	for _, v := range []string{"b", "a", "b", "c", "a"} {
		s.Add(v)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Len())
	}
	if got := s.First(2); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("First(2) = %#v", got)
	}
	if got := s.First(10); len(got) != 3 {
		t.Fatalf("First(10) should return all members, got %#v", got)
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	if !LooksLikePersonName("Reporter Jane Doe wrote") || LooksLikePersonName("no names here") {
		t.Fatalf("LooksLikePersonName mismatch")
	}
	for _, s := range []string{"in 1999 it began", "by March it ended", "on the 3rd day"} {
		if !LooksLikeDate(s) {
			t.Fatalf("LooksLikeDate(%q) expected true", s)
		}
	}
	if LooksLikeDate("call 12345 now") {
		t.Fatalf("five digit number is not a year")
	}
	if !LooksLikeLocation("flights to Paris, France resumed") || LooksLikeLocation("all lowercase words") {
		t.Fatalf("LooksLikeLocation mismatch")
	}
	if !HasCausalConnective("Prices rose DUE TO demand") || HasCausalConnective("prices rose") {
		t.Fatalf("HasCausalConnective mismatch")
	}
}

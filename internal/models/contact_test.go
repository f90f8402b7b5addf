// ABOUTME: Tests for contact name normalization and merge helpers
// ABOUTME: Verifies append-only descriptions and tag set semantics
package models

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sarah", "sarah"},
		{"  Sarah Connor  ", "sarah connor"},
		{"MIKE", "mike"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppendDescription(t *testing.T) {
	got := AppendDescription("met at gym", "runs a bakery")
	want := "met at gym\n---\nruns a bakery"
	if got != want {
		t.Errorf("AppendDescription() = %q, want %q", got, want)
	}

	if got := AppendDescription("", "first info"); got != "first info" {
		t.Errorf("AppendDescription with empty existing = %q, want %q", got, "first info")
	}
}

func TestMergeTags(t *testing.T) {
	got := MergeTags([]string{"gym", "friend"}, []string{"friend", "baker"})
	want := []string{"gym", "friend", "baker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags() = %v, want %v", got, want)
	}

	// No duplicates even when inputs repeat
	got = MergeTags(nil, []string{"a", "a", "b"})
	want = []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags(nil, dup) = %v, want %v", got, want)
	}
}

package model

import "testing"

func TestFirstPartNumber(t *testing.T) {
	if got := FirstPartNumber(true); got != "A" {
		t.Errorf("expected A, got %s", got)
	}
	if got := FirstPartNumber(false); got != "1" {
		t.Errorf("expected 1, got %s", got)
	}
}

func TestNextPartNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"A", "B"},
		{"Y", "Z"},
		{"Z", "AA"},
		{"AZ", "BA"},
		{"ZZ", "AAA"},
		{"1", "2"},
		{"9", "10"},
		{"19", "20"},
		{"99", "100"},
		{"", "1"},
		{"a", "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NextPartNumber(tt.in); got != tt.want {
				t.Errorf("NextPartNumber(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNextPartNumberSequence(t *testing.T) {
	n := FirstPartNumber(true)
	for range 26 {
		n = NextPartNumber(n)
	}
	if n != "AA" {
		t.Errorf("27th letter should be AA, got %s", n)
	}
}

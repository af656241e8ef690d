package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Bravo's Italian Kitchen", want: "bravos-italian-kitchen"},
		{in: "Summit Dental Care", want: "summit-dental-care"},
		{in: "  Joe's  Auto & Tire  ", want: "joes-auto-tire"},
		{in: "A_B_C", want: "a-b-c"},
		{in: "---Edge---", want: "edge"},
		// \w is ASCII, accented characters are stripped
		{in: "Ünïcode Café", want: "ncode-caf"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	a := Slugify("Bravo's Italian Kitchen")
	b := Slugify("Bravo's Italian Kitchen")
	if a != b {
		t.Fatalf("expected identical slugs, got %q and %q", a, b)
	}
}

package utils

import "testing"

func TestParseDirection(t *testing.T) {
	cases := map[string]string{
		"north":  "North",
		" N ":    "North",
		"SOUTH":  "South",
		"e":      "East",
		"West":   "West",
		"Ramp 2": "Ramp 2",
		"":       "",
	}
	for in, want := range cases {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDirectionsDropsBlank(t *testing.T) {
	got := ParseDirections([]string{"n", " ", "west"})
	if len(got) != 2 || got[0] != "North" || got[1] != "West" {
		t.Errorf("unexpected directions %v", got)
	}
}

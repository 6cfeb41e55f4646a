package utils

import (
	"strings"
)

// ParseDirection maps common spellings onto the canonical compass labels.
// Anything else is returned trimmed but otherwise unchanged.
func ParseDirection(input string) string {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "north", "n":
		return "North"
	case "south", "s":
		return "South"
	case "east", "e":
		return "East"
	case "west", "w":
		return "West"
	default:
		return trimmed
	}
}

func ParseDirections(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if d := ParseDirection(in); d != "" {
			out = append(out, d)
		}
	}
	return out
}

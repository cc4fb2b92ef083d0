// Package wordlist generates team names and shareable group codes.
package wordlist

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// teamNames is the fixed pool of display names handed out in creation order.
var teamNames = []string{
	"Red", "Blue", "Green", "Yellow", "Purple", "Orange",
	"Black", "White", "Gold", "Silver", "Crimson", "Navy",
	"Forest", "Sunset", "Storm", "Thunder", "Lightning", "Phoenix",
	"Dragons", "Lions", "Eagles", "Wolves", "Bears", "Tigers",
}

// codeAlphabet deliberately omits characters that read ambiguously
// on a phone screen: I, O, 0 and 1.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// CodeLength is the length of generated group codes.
const CodeLength = 6

// TeamName returns the display name for the n-th team (1-based).
// Past the end of the pool it falls back to a numbered name.
func TeamName(n int) string {
	if n >= 1 && n <= len(teamNames) {
		return fmt.Sprintf("Team %s", teamNames[n-1])
	}
	return fmt.Sprintf("Team %d", n)
}

// NewGroupCode generates a short shareable code for a friend group.
func NewGroupCode() (string, error) {
	code, err := gonanoid.Generate(codeAlphabet, CodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate group code: %w", err)
	}
	return code, nil
}

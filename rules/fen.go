package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// MirrorFEN returns the color-swapped mirror of a position: ranks flipped,
// piece colors swapped, side to move and rights exchanged. The evaluation of
// the mirror is the negation of the input's.
func MirrorFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	if len(fields) != 6 {
		return "", fmt.Errorf("%w: %q: want 6 fields, got %d", ErrInvalidFEN, fen, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("%w: %q: want 8 ranks, got %d", ErrInvalidFEN, fen, len(ranks))
	}
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if fields[2] != "-" {
		fields[2] = sortCastling(swapCase(fields[2]))
	}

	if ep := fields[3]; ep != "-" && len(ep) == 2 {
		rank := '1' + ('8' - rune(ep[1]))
		fields[3] = string([]rune{rune(ep[0]), rank})
	}
	return strings.Join(fields, " "), nil
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

// sortCastling puts rights back in the canonical KQkq order.
func sortCastling(rights string) string {
	var b strings.Builder
	for _, r := range "KQkq" {
		if strings.ContainsRune(rights, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

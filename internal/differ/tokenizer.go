package differ

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits s into maximal runs of whitespace and of non-whitespace.
// Concatenating the tokens reproduces s exactly.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	tokens := make([]string, 0, len(s)/4+1)
	start := 0
	first, _ := utf8.DecodeRuneInString(s)
	inSpace := unicode.IsSpace(first)

	for i, r := range s {
		if space := unicode.IsSpace(r); space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = space
		}
	}
	return append(tokens, s[start:])
}

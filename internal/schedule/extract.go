package schedule

import "strings"

// ExtractToken mines a raw schedule definition string for a usable token.
// It is used when no pre-aggregated token exists for a venue key and the
// right-hand side of a defaults-file entry must be searched instead.
//
// Strategies, in priority order:
//  1. an explicit "0=" assignment: take the substring up to the next ';',
//     keep only the token alphabet, and use it if anything remains;
//  2. the literal 0000+0000 anywhere in the definition;
//  3. the same fragment scan the parser uses, concatenating every matched
//     window substring in order.
//
// Returns ok=false when nothing usable is found; it never guesses.
func ExtractToken(definition string) (string, bool) {
	s := strings.TrimSpace(definition)
	if s == "" {
		return "", false
	}

	if idx := strings.Index(s, "0="); idx >= 0 {
		t := s[idx+2:]
		if semi := strings.IndexByte(t, ';'); semi >= 0 {
			t = t[:semi]
		}
		t = keepTokenAlphabet(t)
		if t != "" {
			return t, true
		}
	}

	if strings.Contains(s, AlwaysOpenToken) {
		return AlwaysOpenToken, true
	}

	var b strings.Builder
	for _, f := range scanFragments(s) {
		b.WriteString(f.text)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// keepTokenAlphabet strips every byte outside the token alphabet
// [0-9 p r a - +].
func keepTokenAlphabet(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) || c == 'p' || c == 'r' || c == 'a' || c == '-' || c == '+' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

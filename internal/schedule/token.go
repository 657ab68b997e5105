// Package schedule implements the trading-schedule token grammar and the
// open/closed decision logic built on top of it. Everything in this package
// is a pure function: no I/O, no shared state, no panics on any input.
package schedule

import (
	"strings"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
)

// AlwaysOpenToken is the special whole-token literal meaning 24h trading.
const AlwaysOpenToken = "0000+0000"

// fragKind tags one matched fragment of a token scan.
type fragKind int

const (
	fragMarker    fragKind = iota // p/r/a marker followed by HHMMHHMM
	fragOvernight                 // '-' followed by HHMMHHMM, explicitly overnight
	fragPlain                     // bare HHMMHHMM chunk cut from a digit run
)

// fragment is one window-sized substring matched by the scanner.
// For fragMarker and fragOvernight the text includes the leading marker.
type fragment struct {
	kind fragKind
	text string
}

// digits returns the 8-digit HHMMHHMM payload of the fragment.
func (f fragment) digits() string {
	if f.kind == fragPlain {
		return f.text
	}
	return f.text[1:]
}

// scanFragments performs a single left-to-right scan over s, longest match
// first. A marker with fewer than 8 trailing digits is not a match: the
// marker character alone is skipped and scanning resumes, salvaging whatever
// windows follow. Digit runs are cut into consecutive 8-digit chunks with
// any trailing remainder dropped. Every other byte is skipped one at a time,
// which makes the scan tolerant of separators and punctuation.
func scanFragments(s string) []fragment {
	var frags []fragment
	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		switch {
		case c == 'p' || c == 'r' || c == 'a' || c == '-':
			if i+9 <= n && isDigits(s[i+1:i+9]) {
				kind := fragMarker
				if c == '-' {
					kind = fragOvernight
				}
				frags = append(frags, fragment{kind: kind, text: s[i : i+9]})
				i += 9
			} else {
				i++
			}
		case isDigit(c):
			j := i
			for j < n && isDigit(s[j]) {
				j++
			}
			for k := i; k+8 <= j; k += 8 {
				frags = append(frags, fragment{kind: fragPlain, text: s[k : k+8]})
			}
			i = j
		default:
			i++
		}
	}
	return frags
}

// Parse turns a schedule token into its trading windows, in token order.
// It never fails: malformed or unrecognized input yields an empty slice,
// which callers must treat as "no data", not as "closed" (see NextState).
func Parse(token string) []domain.TimeInterval {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if token == AlwaysOpenToken {
		return []domain.TimeInterval{domain.AllDayInterval()}
	}
	var out []domain.TimeInterval
	for _, f := range scanFragments(token) {
		start, end := windowBounds(f.digits())
		if f.kind == fragOvernight {
			out = append(out, domain.NewOvernightInterval(start, end))
		} else {
			out = append(out, domain.NewInterval(start, end))
		}
	}
	return out
}

// windowBounds splits an 8-digit HHMMHHMM payload into start and end minutes.
func windowBounds(digits string) (start, end domain.MinuteOfDay) {
	start = domain.ClockMinute(atoi2(digits[0:2]), atoi2(digits[2:4]))
	end = domain.ClockMinute(atoi2(digits[4:6]), atoi2(digits[6:8]))
	return start, end
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

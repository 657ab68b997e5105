package schedule

import (
	"time"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
)

// IsTrading reports whether the instant falls inside any of the windows.
// The instant is reduced to its UTC minute of day; windows are a disjunction.
// An empty slice evaluates to false. The caller is responsible for telling
// "genuinely no windows" apart from "token failed to parse"; this function
// cannot (see NextState).
func IsTrading(intervals []domain.TimeInterval, t time.Time) bool {
	m := domain.MinuteOf(t)
	for _, iv := range intervals {
		if iv.Contains(m) {
			return true
		}
	}
	return false
}

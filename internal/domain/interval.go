package domain

import (
	"fmt"
	"time"
)

// MinuteOfDay is a UTC wall-clock time with minute resolution (0..1439).
// All schedule evaluation happens at this resolution; seconds are truncated.
type MinuteOfDay int

// MinuteOf reduces an instant to its UTC minute of day.
func MinuteOf(t time.Time) MinuteOfDay {
	u := t.UTC()
	return MinuteOfDay(u.Hour()*60 + u.Minute())
}

// ClockMinute builds a MinuteOfDay from an HHMM pair.
// Hours are taken mod 24 and minutes mod 60, matching the token grammar.
func ClockMinute(hh, mm int) MinuteOfDay {
	return MinuteOfDay((hh%24)*60 + mm%60)
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// TimeInterval is a single trading window within a UTC day.
// A standard window is half-open: trading when start <= t < end.
// An overnight window wraps past midnight: trading when t >= start || t < end.
// AllDay is a sentinel for "always trading"; start and end are both 00:00.
type TimeInterval struct {
	Start     MinuteOfDay `json:"start"`
	End       MinuteOfDay `json:"end"`
	Overnight bool        `json:"overnight"`
	AllDay    bool        `json:"all_day"`
}

// AllDayInterval returns the "always trading" sentinel window.
func AllDayInterval() TimeInterval {
	return TimeInterval{Overnight: true, AllDay: true}
}

// NewInterval builds a standard window from start/end minutes.
// An end earlier than the start makes the window implicitly overnight;
// equal bounds collapse to all-day.
func NewInterval(start, end MinuteOfDay) TimeInterval {
	if start == end {
		return AllDayInterval()
	}
	return TimeInterval{Start: start, End: end, Overnight: end < start}
}

// NewOvernightInterval builds an explicitly overnight window, regardless of
// how start and end compare. Equal bounds collapse to all-day.
func NewOvernightInterval(start, end MinuteOfDay) TimeInterval {
	if start == end {
		return AllDayInterval()
	}
	return TimeInterval{Start: start, End: end, Overnight: true}
}

// Contains reports whether the given minute falls inside the window.
func (iv TimeInterval) Contains(m MinuteOfDay) bool {
	if iv.AllDay {
		return true
	}
	if iv.Overnight {
		return m >= iv.Start || m < iv.End
	}
	return m >= iv.Start && m < iv.End
}

package schedule

import (
	"time"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
)

// Grace is the symmetric look-ahead/look-behind applied around the sampling
// instant. Together the two samples form a 2*Grace band straddling every
// open/close boundary inside which the decision sticks to the previous state
// instead of flapping on sampling jitter.
const Grace = 5 * time.Minute

// DayTradingOracle answers whether a whole day is a trading day
// (holidays and weekends say no).
type DayTradingOracle interface {
	IsTradingDay(t time.Time) bool
}

// SessionTradingOracle answers whether an instant is inside a trading session.
type SessionTradingOracle interface {
	IsTradingAt(t time.Time) bool
}

// IntervalSession adapts a parsed schedule definition to SessionTradingOracle,
// so token-derived schedules and live calendar lookups satisfy one contract.
type IntervalSession []domain.TimeInterval

func (s IntervalSession) IsTradingAt(t time.Time) bool {
	return IsTrading(s, t)
}

// NextState computes the debounced open/closed decision for a token-derived
// schedule. previous is nil when no state has ever been recorded.
//
// An empty interval slice means "insufficient information" (parse failure or
// missing data) and yields the previous state unchanged: malformed schedule
// data must never fabricate a state change. Otherwise: trading at now+Grace
// means open; not trading at now-Grace means closed; the remaining case is
// the edge band around a transition, which keeps the previous state.
func NextState(intervals []domain.TimeInterval, now time.Time, previous *bool) bool {
	if len(intervals) == 0 {
		return prevOr(previous, false)
	}
	if IsTrading(intervals, now.Add(Grace)) {
		return true
	}
	if !IsTrading(intervals, now.Add(-Grace)) {
		return false
	}
	return prevOr(previous, false)
}

// NextStateFromOracles is the same state machine fed by capability oracles
// instead of parsed intervals, used for live trading-calendar lookups.
// A non-trading day dominates all session evaluation. A nil session oracle
// means session information is unavailable and preserves the previous state.
func NextStateFromOracles(day DayTradingOracle, session SessionTradingOracle, now time.Time, previous *bool) bool {
	if day != nil && !day.IsTradingDay(now) {
		return false
	}
	if session == nil {
		return prevOr(previous, false)
	}
	if session.IsTradingAt(now.Add(Grace)) {
		return true
	}
	if !session.IsTradingAt(now.Add(-Grace)) {
		return false
	}
	return prevOr(previous, false)
}

func prevOr(previous *bool, fallback bool) bool {
	if previous != nil {
		return *previous
	}
	return fallback
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
	"github.com/Juskocode/QDSMarketTool/internal/infra"
	"github.com/Juskocode/QDSMarketTool/internal/schedule"
)

// Resolution sources, in fixed precedence order.
const (
	SourceAggregated = "aggregated" // token from the aggregated dataset
	SourceDefaults   = "defaults"   // token mined from the defaults file
	SourceCalendar   = "calendar"   // live trading-calendar oracle
	SourceFallback   = "fallback"   // nothing worked, previous state retained
)

const minutesPerDay = 24 * 60

// CalendarService is the live trading-calendar collaborator: for a venue key
// and instant it reports a day-level and a session-level trading boolean.
type CalendarService interface {
	Status(ctx context.Context, key string, at time.Time) (day, session bool, err error)
}

// StateService applies the token resolution policy and runs the hysteresis
// state machine for every venue. It owns no storage; previous states come in
// as a parameter and next states go out as a value.
type StateService struct {
	tokens   map[string]string // aggregated dataset, venue key -> token
	defaults map[string]string // defaults-file tokens, venue key -> token
	remote   CalendarService   // optional, may be nil
	dayCal   schedule.DayTradingOracle
	metrics  *infra.Metrics
}

// NewStateService creates a StateService. remote and dayCal may be nil;
// when both are, venues with no token fall back to their previous state.
func NewStateService(tokens, defaults map[string]string, remote CalendarService, dayCal schedule.DayTradingOracle, metrics *infra.Metrics) *StateService {
	if tokens == nil {
		tokens = map[string]string{}
	}
	if defaults == nil {
		defaults = map[string]string{}
	}
	if metrics == nil {
		metrics = &infra.Metrics{}
	}
	return &StateService{
		tokens:   tokens,
		defaults: defaults,
		remote:   remote,
		dayCal:   dayCal,
		metrics:  metrics,
	}
}

// resolveToken finds the schedule token for a venue key, preferring the
// aggregated dataset over the defaults file.
func (s *StateService) resolveToken(key string) (token, source string, ok bool) {
	if t, found := s.tokens[key]; found {
		return t, SourceAggregated, true
	}
	if t, found := s.defaults[key]; found {
		return t, SourceDefaults, true
	}
	return "", "", false
}

// EvaluateVenue computes the next open/closed state for one venue. A failure
// in every source retains the previous effective state (false if none) and
// reports SourceFallback; it never invents an open state.
func (s *StateService) EvaluateVenue(ctx context.Context, v domain.VenueConfig, now time.Time, previous *bool) (bool, string) {
	if token, source, ok := s.resolveToken(v.Key); ok {
		switch source {
		case SourceAggregated:
			s.metrics.RecordAggregatedHit()
		case SourceDefaults:
			s.metrics.RecordDefaultsHit()
			slog.Info("using defaults token",
				slog.String("market", v.ID), slog.String("key", v.Key), slog.String("token", token))
		}
		intervals := schedule.Parse(token)
		if len(intervals) == 0 {
			slog.Warn("token yields no windows, keeping previous state",
				slog.String("market", v.ID), slog.String("token", token))
		}
		return schedule.NextState(intervals, now, previous), source
	}

	if s.remote != nil {
		vc := newVenueCalendar(ctx, s.remote, v.Key)
		state := schedule.NextStateFromOracles(vc, vc, now, previous)
		if vc.Err() == nil {
			s.metrics.RecordCalendarHit()
			return state, SourceCalendar
		}
		s.metrics.RecordResolveFailure()
		fallback := prevOr(previous, false)
		slog.Warn("calendar lookup failed, using fallback state",
			slog.Any("error", domain.NewResolveError(v.ID, v.Key, vc.Err())),
			slog.Bool("state", fallback))
		return fallback, SourceFallback
	}

	if s.dayCal != nil {
		// Day-level signal only: a non-trading day closes the venue, a
		// trading day preserves the previous state.
		s.metrics.RecordCalendarHit()
		return schedule.NextStateFromOracles(s.dayCal, nil, now, previous), SourceCalendar
	}

	s.metrics.RecordResolveFailure()
	fallback := prevOr(previous, false)
	slog.Warn("venue not found in any schedule source, using fallback state",
		slog.Any("error", domain.NewResolveError(v.ID, v.Key, domain.ErrNoToken)),
		slog.Bool("state", fallback))
	return fallback, SourceFallback
}

// VenueOutcome is the result of evaluating one venue in a run cycle.
type VenueOutcome struct {
	Venue   domain.VenueConfig
	Open    bool
	Source  string
	Changed bool
}

// RunCycle evaluates every venue at the same instant. previous is mutated in
// place to hold the next states; Changed flags venues whose effective state
// flipped. One venue's failure never affects another's evaluation.
func (s *StateService) RunCycle(ctx context.Context, venues []domain.VenueConfig, now time.Time, previous map[string]bool) []VenueOutcome {
	outcomes := make([]VenueOutcome, 0, len(venues))
	for _, v := range venues {
		s.metrics.RecordVenue()

		var prev *bool
		if p, ok := previous[v.ID]; ok {
			prevCopy := p
			prev = &prevCopy
		}
		prevEffective := prevOr(prev, false)

		open, source := s.EvaluateVenue(ctx, v, now, prev)
		changed := open != prevEffective
		if changed {
			s.metrics.RecordStateChange()
			previous[v.ID] = open
		}

		outcomes = append(outcomes, VenueOutcome{Venue: v, Open: open, Source: source, Changed: changed})
	}
	return outcomes
}

// MinuteVector computes the open/closed state for every minute of the UTC
// day containing `day`, chaining each minute's result as the next minute's
// previous state. A venue that cannot be resolved yields all zeros.
func (s *StateService) MinuteVector(ctx context.Context, v domain.VenueConfig, day time.Time) []bool {
	states := make([]bool, minutesPerDay)
	d := day.UTC()
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	if token, source, ok := s.resolveToken(v.Key); ok {
		slog.Info("per-minute vector from token",
			slog.String("market", v.ID), slog.String("source", source), slog.String("token", token))
		intervals := schedule.Parse(token)
		var prev *bool
		for i := range states {
			states[i] = schedule.NextState(intervals, midnight.Add(time.Duration(i)*time.Minute), prev)
			prev = &states[i]
		}
		return states
	}

	if s.remote != nil {
		vc := newVenueCalendar(ctx, s.remote, v.Key)
		var prev *bool
		for i := range states {
			states[i] = schedule.NextStateFromOracles(vc, vc, midnight.Add(time.Duration(i)*time.Minute), prev)
			prev = &states[i]
		}
		if vc.Err() != nil {
			slog.Warn("per-minute calendar lookup failed, writing zeros",
				slog.Any("error", domain.NewResolveError(v.ID, v.Key, vc.Err())))
			return make([]bool, minutesPerDay)
		}
		return states
	}

	slog.Warn("per-minute schedule resolve failed, writing zeros",
		slog.String("market", v.ID), slog.String("key", v.Key))
	return states
}

// venueCalendar binds the remote calendar service to one venue key and
// memoizes lookups per instant, so the two hysteresis samples of adjacent
// minutes hit the service only once each. The first lookup error is kept
// and checked by the caller; results are discarded when it is set.
type venueCalendar struct {
	ctx    context.Context
	client CalendarService
	key    string
	memo   map[int64]calendarSample
	err    error
}

type calendarSample struct {
	day     bool
	session bool
}

func newVenueCalendar(ctx context.Context, client CalendarService, key string) *venueCalendar {
	return &venueCalendar{ctx: ctx, client: client, key: key, memo: make(map[int64]calendarSample)}
}

func (c *venueCalendar) lookup(t time.Time) calendarSample {
	k := t.Unix()
	if s, ok := c.memo[k]; ok {
		return s
	}
	day, session, err := c.client.Status(c.ctx, c.key, t)
	if err != nil && c.err == nil {
		c.err = err
	}
	s := calendarSample{day: day, session: session}
	c.memo[k] = s
	return s
}

func (c *venueCalendar) IsTradingDay(t time.Time) bool {
	return c.lookup(t).day
}

func (c *venueCalendar) IsTradingAt(t time.Time) bool {
	return c.lookup(t).session
}

func (c *venueCalendar) Err() error {
	return c.err
}

func prevOr(previous *bool, fallback bool) bool {
	if previous != nil {
		return *previous
	}
	return fallback
}

package infra

import "sync/atomic"

// Metrics provides lightweight observability for one evaluation run without
// external dependencies. Uses atomic operations for thread-safety so venues
// may be evaluated concurrently.
type Metrics struct {
	// Counters
	venuesEvaluated atomic.Uint64
	stateChanges    atomic.Uint64
	resolveFailures atomic.Uint64

	// Per-source resolution hits
	aggregatedHits atomic.Uint64
	defaultsHits   atomic.Uint64
	calendarHits   atomic.Uint64
}

// RecordVenue records one evaluated venue.
func (m *Metrics) RecordVenue() {
	m.venuesEvaluated.Add(1)
}

// RecordStateChange records a venue whose open/closed state flipped.
func (m *Metrics) RecordStateChange() {
	m.stateChanges.Add(1)
}

// RecordResolveFailure records a venue left on its previous state because
// no schedule source worked.
func (m *Metrics) RecordResolveFailure() {
	m.resolveFailures.Add(1)
}

// RecordAggregatedHit records a token served from the aggregated dataset.
func (m *Metrics) RecordAggregatedHit() {
	m.aggregatedHits.Add(1)
}

// RecordDefaultsHit records a token mined from the defaults file.
func (m *Metrics) RecordDefaultsHit() {
	m.defaultsHits.Add(1)
}

// RecordCalendarHit records a venue decided by the trading-calendar oracle.
func (m *Metrics) RecordCalendarHit() {
	m.calendarHits.Add(1)
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	VenuesEvaluated uint64
	StateChanges    uint64
	ResolveFailures uint64
	AggregatedHits  uint64
	DefaultsHits    uint64
	CalendarHits    uint64
}

// Snapshot returns a consistent-enough copy for the run summary.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		VenuesEvaluated: m.venuesEvaluated.Load(),
		StateChanges:    m.stateChanges.Load(),
		ResolveFailures: m.resolveFailures.Load(),
		AggregatedHits:  m.aggregatedHits.Load(),
		DefaultsHits:    m.defaultsHits.Load(),
		CalendarHits:    m.calendarHits.Load(),
	}
}

// Reset clears all metrics (mainly for tests).
func (m *Metrics) Reset() {
	m.venuesEvaluated.Store(0)
	m.stateChanges.Store(0)
	m.resolveFailures.Store(0)
	m.aggregatedHits.Store(0)
	m.defaultsHits.Store(0)
	m.calendarHits.Store(0)
}

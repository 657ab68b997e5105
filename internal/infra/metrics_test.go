package infra

import "testing"

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordVenue()
	m.RecordVenue()
	m.RecordVenue()
	m.RecordStateChange()
	m.RecordResolveFailure()

	snap := m.Snapshot()
	if snap.VenuesEvaluated != 3 {
		t.Errorf("Expected 3 venues, got %d", snap.VenuesEvaluated)
	}
	if snap.StateChanges != 1 {
		t.Errorf("Expected 1 state change, got %d", snap.StateChanges)
	}
	if snap.ResolveFailures != 1 {
		t.Errorf("Expected 1 resolve failure, got %d", snap.ResolveFailures)
	}
}

func TestMetrics_SourceHits(t *testing.T) {
	m := &Metrics{}

	m.RecordAggregatedHit()
	m.RecordAggregatedHit()
	m.RecordDefaultsHit()
	m.RecordCalendarHit()

	snap := m.Snapshot()
	if snap.AggregatedHits != 2 {
		t.Errorf("Expected 2 aggregated hits, got %d", snap.AggregatedHits)
	}
	if snap.DefaultsHits != 1 {
		t.Errorf("Expected 1 defaults hit, got %d", snap.DefaultsHits)
	}
	if snap.CalendarHits != 1 {
		t.Errorf("Expected 1 calendar hit, got %d", snap.CalendarHits)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordVenue()
	m.RecordStateChange()
	m.RecordAggregatedHit()

	m.Reset()
	snap := m.Snapshot()

	if snap.VenuesEvaluated != 0 {
		t.Error("Expected 0 venues after reset")
	}
	if snap.StateChanges != 0 {
		t.Error("Expected 0 state changes after reset")
	}
	if snap.AggregatedHits != 0 {
		t.Error("Expected 0 aggregated hits after reset")
	}
}

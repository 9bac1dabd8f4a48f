package market

import (
	"testing"
	"time"
)

// The computed_at column stores whole seconds. A run's timestamp must
// round-trip through that precision unchanged, otherwise the stale
// sweep's "computed_at < now" would match the rows the same run just
// wrote.
func TestRecomputeTimeSurvivesDatetimeColumn(t *testing.T) {
	ts := recomputeTime()

	if ts.Nanosecond() != 0 {
		t.Fatalf("recomputeTime() carries fractional seconds: %v", ts)
	}

	stored, err := time.ParseInLocation("2006-01-02 15:04:05", ts.Format("2006-01-02 15:04:05"), ts.Location())
	if err != nil {
		t.Fatalf("round-trip parse: %v", err)
	}

	if stored.Before(ts) {
		t.Errorf("stored value %v sorts before its own run timestamp %v", stored, ts)
	}
	if !stored.Equal(ts) {
		t.Errorf("stored value %v != run timestamp %v", stored, ts)
	}
}

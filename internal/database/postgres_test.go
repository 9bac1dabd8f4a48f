package database

import (
	"strings"
	"testing"
)

// description, address, city, and region are nullable in the DDL but
// scan into plain string fields. The select list must coalesce each of
// them so an externally written NULL cannot fail the scan.
func TestPublishedColumnsCoalesceNullableText(t *testing.T) {
	for _, col := range []string{"description", "address", "city", "region"} {
		want := "COALESCE(" + col + ", '')"
		if !strings.Contains(publishedColumns, want) {
			t.Errorf("select list does not coalesce %s", col)
		}
	}

	// Nullable columns scanned into pointer fields stay as-is.
	for _, col := range []string{"area_sqft", "latitude", "longitude"} {
		if strings.Contains(publishedColumns, "COALESCE("+col) {
			t.Errorf("%s scans into a pointer and must not be coalesced", col)
		}
	}
}

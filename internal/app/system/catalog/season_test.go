package catalog_test

import (
	"testing"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

func TestSeason(t *testing.T) {
	months := catalog.Season(2025)
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}

	tests := []struct {
		i    int
		key  string
		name string
	}{
		{0, "july-2025", "July 2025"},
		{5, "december-2025", "December 2025"},
		{6, "january-2026", "January 2026"},
		{11, "june-2026", "June 2026"},
	}
	for _, tc := range tests {
		if m := months[tc.i]; m.Key != tc.key || m.Name != tc.name {
			t.Errorf("month %d = %q/%q, want %q/%q", tc.i, m.Key, m.Name, tc.key, tc.name)
		}
	}
	if last := months[11]; last.Month != time.June || last.Year != 2026 {
		t.Errorf("last month = %v %d, want June 2026", last.Month, last.Year)
	}
}

func TestSeasonHelpers(t *testing.T) {
	if got := catalog.SeasonLabel(2025); got != "2025-2026" {
		t.Errorf("SeasonLabel(2025) = %q", got)
	}

	starts := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), 2025},
	}
	for _, tc := range starts {
		if got := catalog.SeasonStartYear(tc.at); got != tc.want {
			t.Errorf("SeasonStartYear(%s) = %d, want %d", tc.at.Format("2006-01-02"), got, tc.want)
		}
	}

	m, y, ok := catalog.ParseMonthKey("october-2025")
	if !ok || m != time.October || y != 2025 {
		t.Errorf("ParseMonthKey(october-2025) = %v %d %v", m, y, ok)
	}

	for _, bad := range []string{"", "october", "octobre-2025", "october-20x5"} {
		if _, _, ok := catalog.ParseMonthKey(bad); ok {
			t.Errorf("ParseMonthKey(%q) should fail", bad)
		}
	}
}

func TestCalendar(t *testing.T) {
	items := []models.ContentItem{
		{ID: "oct1", Date: "2025-10-04"},
		{ID: "oct2", Date: "2025-10-19"},
		{ID: "jan", Date: "2026-01-10"},
		{ID: "before", Date: "2025-06-30"},
		{ID: "after", Date: "2026-07-01"},
		{ID: "undated", Date: ""},
	}

	buckets := catalog.Calendar(items, 2025)
	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}

	if buckets[3].Key != "october-2025" {
		t.Errorf("bucket 3 key = %q", buckets[3].Key)
	}
	assertIDs(t, "october", buckets[3].Items, []string{"oct2", "oct1"})
	assertIDs(t, "january", buckets[6].Items, []string{"jan"})

	total := 0
	for _, b := range buckets {
		if b.Items == nil {
			t.Errorf("%s: nil items", b.Key)
		}
		total += len(b.Items)
	}
	if total != 3 {
		t.Errorf("expected 3 bucketed items, got %d", total)
	}
}

package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// Month is one tab of the season calendar.
type Month struct {
	Key   string     `json:"key"`  // e.g. "july-2025"
	Name  string     `json:"name"` // e.g. "July 2025"
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// MonthBucket is a calendar month with its items, newest first.
type MonthBucket struct {
	Month
	Items []models.ContentItem `json:"items"`
}

// Season returns the twelve months from July of startYear through June of
// startYear+1.
func Season(startYear int) []Month {
	months := make([]Month, 0, 12)
	for i := 0; i < 12; i++ {
		m := time.Month((int(time.July)-1+i)%12 + 1)
		y := startYear
		if m < time.July {
			y++
		}
		months = append(months, Month{
			Key:   MonthKey(m, y),
			Name:  fmt.Sprintf("%s %d", m, y),
			Month: m,
			Year:  y,
		})
	}
	return months
}

// SeasonLabel formats a season such as "2025-2026".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// SeasonStartYear returns the first year of the season containing t.
func SeasonStartYear(t time.Time) int {
	if t.Month() >= time.July {
		return t.Year()
	}
	return t.Year() - 1
}

// MonthKey formats a calendar key such as "october-2025".
func MonthKey(m time.Month, year int) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(m.String()), year)
}

// ParseMonthKey reverses MonthKey.
func ParseMonthKey(key string) (time.Month, int, bool) {
	name, yearStr, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, false
	}
	var year int
	if _, err := fmt.Sscanf(yearStr, "%d", &year); err != nil || fmt.Sprint(year) != yearStr {
		return 0, 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, year, true
		}
	}
	return 0, 0, false
}

// Calendar buckets items by the month and year of their date. Items dated
// outside the season, or undated, are left out.
func Calendar(items []models.ContentItem, startYear int) []MonthBucket {
	months := Season(startYear)
	buckets := make([]MonthBucket, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		buckets[i] = MonthBucket{Month: m, Items: []models.ContentItem{}}
		index[m.Key] = i
	}

	for _, c := range items {
		t, ok := ParseDate(c.Date)
		if !ok {
			continue
		}
		if i, ok := index[MonthKey(t.Month(), t.Year())]; ok {
			buckets[i].Items = append(buckets[i].Items, c)
		}
	}
	for i := range buckets {
		Sort(buckets[i].Items, SortDate)
	}
	return buckets
}

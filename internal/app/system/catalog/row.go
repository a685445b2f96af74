package catalog

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// Row is a content item decorated with its access labels for display.
type Row struct {
	models.ContentItem
	AccessLevel    string `json:"access_level"`
	PrivacyWarning string `json:"privacy_warning,omitempty"`
	CanDownload    bool   `json:"can_download"`
	HasFile        bool   `json:"has_file"`
}

// Decorate labels c for the viewer p.
func Decorate(p *contentpolicy.Principal, c models.ContentItem) Row {
	warning, _ := contentpolicy.PrivacyWarning(c)
	return Row{
		ContentItem:    c,
		AccessLevel:    contentpolicy.AccessLevelDisplay(c),
		PrivacyWarning: warning,
		CanDownload:    contentpolicy.CanUserDownload(p, c),
		HasFile:        c.HasFile(),
	}
}

// DecorateAll labels every item, keeping order. The result is never nil.
func DecorateAll(p *contentpolicy.Principal, items []models.ContentItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, Decorate(p, c))
	}
	return rows
}

// RowBucket is a calendar month with decorated items.
type RowBucket struct {
	Month
	Items []Row `json:"items"`
}

// DecorateCalendar labels the items of each month.
func DecorateCalendar(p *contentpolicy.Principal, buckets []MonthBucket) []RowBucket {
	out := make([]RowBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, RowBucket{Month: b.Month, Items: DecorateAll(p, b.Items)})
	}
	return out
}

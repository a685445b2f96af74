package videos

import (
	"fmt"
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

type listResponse struct {
	Month  string         `json:"month,omitempty"`
	Label  string         `json:"label,omitempty"`
	Videos []models.Video `json:"videos"`
	Total  int            `json:"total"`
}

// videoInput is the body of POST /videos.
type videoInput struct {
	Title           string   `json:"title" validate:"required,max=200" label:"Title"`
	Description     string   `json:"description" validate:"max=5000" label:"Description"`
	EmbedURL        string   `json:"embed_url" validate:"required,httpurl" label:"Embed URL"`
	ThumbnailURL    string   `json:"thumbnail_url" validate:"omitempty,httpurl" label:"Thumbnail"`
	Duration        string   `json:"duration" validate:"max=20" label:"Duration"`
	UploadDate      string   `json:"upload_date" validate:"omitempty,day" label:"Upload date"`
	Month           string   `json:"month" validate:"max=30" label:"Month"`
	Privacy         string   `json:"privacy" validate:"omitempty,oneof=public private domain-restricted" label:"Privacy"`
	DownloadEnabled bool     `json:"download_enabled"`
	AssignedTo      []string `json:"assigned_to"`
	Tags            []string `json:"tags"`
	Quality         string   `json:"quality" validate:"max=20" label:"Quality"`
	Size            string   `json:"size" validate:"max=20" label:"Size"`
}

func (in *videoInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.EmbedURL = strings.TrimSpace(in.EmbedURL)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	in.Duration = strings.TrimSpace(in.Duration)
	in.UploadDate = strings.TrimSpace(in.UploadDate)
	in.Month = strings.ToLower(strings.TrimSpace(in.Month))
	in.Privacy = strings.ToLower(strings.TrimSpace(in.Privacy))
	in.Quality = strings.TrimSpace(in.Quality)
	in.Size = strings.TrimSpace(in.Size)
	in.AssignedTo = compact(in.AssignedTo)
	in.Tags = compact(in.Tags)
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// monthLabel renders "october-2025" as "October 2025".
func monthLabel(key string) string {
	m, y, ok := catalog.ParseMonthKey(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d", m, y)
}

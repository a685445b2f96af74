// internal/domain/models/video.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video privacy settings mirrored from the hosting platform.
const (
	PrivacyPublic            = "public"
	PrivacyPrivate           = "private"
	PrivacyDomainRestricted  = "domain-restricted"
	DefaultVideoThumbnailURL = "https://images.pexels.com/photos/274422/pexels-photo-274422.jpeg?auto=compress&cs=tinysrgb&w=400&h=225"
)

// Video is a match or training video hosted on an external platform and
// catalogued by month of the season.
type Video struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`

	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	EmbedURL     string `bson:"embed_url" json:"embed_url"`
	ThumbnailURL string `bson:"thumbnail_url" json:"thumbnail_url"`
	Duration     string `bson:"duration" json:"duration"`

	// UploadDate is formatted YYYY-MM-DD.
	UploadDate string `bson:"upload_date" json:"upload_date"`
	// Month is a season calendar key such as "october-2025".
	Month  string `bson:"month" json:"month"`
	Season string `bson:"season" json:"season"` // e.g. "2025-2026"

	Privacy         string   `bson:"privacy" json:"privacy"`
	DownloadEnabled bool     `bson:"download_enabled" json:"download_enabled"`
	Views           int64    `bson:"views" json:"views"`
	Owner           string   `bson:"owner" json:"owner"`
	AssignedTo      []string `bson:"assigned_to" json:"assigned_to"`
	Tags            []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Quality         string   `bson:"quality" json:"quality"`
	Size            string   `bson:"size" json:"size"`

	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	CreatedByID *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
}

// IsAssignedToAll reports whether the video targets every account.
func (v *Video) IsAssignedToAll() bool {
	for _, a := range v.AssignedTo {
		if a == AssignAll {
			return true
		}
	}
	return false
}

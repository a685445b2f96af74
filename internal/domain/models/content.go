// internal/domain/models/content.go
package models

import "time"

// Content types.
const (
	ContentVideo    = "video"
	ContentDocument = "document"
)

// ContentItem is a unit of distributable material (match video, tactical
// document, ...) together with its access policy.
//
// ID is a string rather than an ObjectID so that items merged from the drive
// and the video catalog ("gdrive-<id>", "vimeo-<id>") share one shape with
// uploaded items.
type ContentItem struct {
	ID      string `bson:"_id" json:"id"`
	Title   string `bson:"title" json:"title"`
	TitleCI string `bson:"title_ci" json:"-"`
	Type    string `bson:"type" json:"type"` // video | document

	// Date is the match or publication day, formatted YYYY-MM-DD.
	Date        string `bson:"date" json:"date"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	IsExternal  bool   `bson:"is_external,omitempty" json:"is_external,omitempty"`
	Size        string `bson:"size,omitempty" json:"size,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	MatchNumber string `bson:"match_number,omitempty" json:"match_number,omitempty"`
	UploadDate  string `bson:"upload_date,omitempty" json:"upload_date,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"`
	PlayerName  string `bson:"player_name,omitempty" json:"player_name,omitempty"`
	Thumbnail   string `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	// Access policy.
	AssignedTo      string   `bson:"assigned_to" json:"assigned_to"`
	IsPrivate       bool     `bson:"is_private,omitempty" json:"is_private,omitempty"`
	AuthorizedUsers []string `bson:"authorized_users,omitempty" json:"authorized_users,omitempty"`
	CreatedBy       *string  `bson:"created_by,omitempty" json:"created_by,omitempty"`

	// Stored file fields, set when the content was uploaded rather than linked.
	FilePath    string `bson:"file_path,omitempty" json:"-"`
	FileName    string `bson:"file_name,omitempty" json:"file_name,omitempty"`
	FileSize    int64  `bson:"file_size,omitempty" json:"file_size,omitempty"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasFile returns true if this item has an uploaded file.
func (c *ContentItem) HasFile() bool {
	return c.FilePath != ""
}

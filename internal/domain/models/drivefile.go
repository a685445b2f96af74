// internal/domain/models/drivefile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drive entry types.
const (
	DriveFolder   = "folder"
	DriveVideo    = "video"
	DriveDocument = "document"
	DriveImage    = "image"
)

// DrivePermissions lists who may view, edit, or download a drive entry.
// Entries are role tokens ("admin", "staff", "player"), "all", or user ids.
type DrivePermissions struct {
	CanView     []string `bson:"can_view" json:"can_view"`
	CanEdit     []string `bson:"can_edit" json:"can_edit"`
	CanDownload []string `bson:"can_download" json:"can_download"`
}

// DriveFile is an entry of the club's shared file space. Files are links to
// externally hosted documents; folders only group them.
type DriveFile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Type   string             `bson:"type" json:"type"` // folder | video | document | image

	Size         string `bson:"size,omitempty" json:"size,omitempty"`
	Owner        string `bson:"owner" json:"owner"`
	URL          string `bson:"url,omitempty" json:"url,omitempty"`
	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`

	// Path is the breadcrumb of folder names from the root to the parent.
	Path     []string            `bson:"path" json:"path"`
	ParentID *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	Shared      bool             `bson:"shared" json:"shared"`
	Starred     bool             `bson:"starred" json:"starred"`
	Permissions DrivePermissions `bson:"permissions" json:"permissions"`

	ModifiedTime time.Time           `bson:"modified_time" json:"modified_time"`
	CreatedByID  *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
}

// IsFolder reports whether the entry is a folder.
func (f *DriveFile) IsFolder() bool {
	return f.Type == DriveFolder
}

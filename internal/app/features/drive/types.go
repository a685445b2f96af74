package drive

import (
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// entryRow is a drive entry with the caller's rights on it.
type entryRow struct {
	models.DriveFile
	CanEdit     bool `json:"can_edit"`
	CanDownload bool `json:"can_download"`
}

func toRow(p *contentpolicy.Principal, f models.DriveFile) entryRow {
	return entryRow{
		DriveFile:   f,
		CanEdit:     drivepolicy.CanEdit(p, f),
		CanDownload: drivepolicy.CanDownload(p, f),
	}
}

type listResponse struct {
	Folder     *entryRow  `json:"folder,omitempty"`
	Breadcrumb []string   `json:"breadcrumb"`
	Items      []entryRow `json:"items"`
}

type folderInput struct {
	Name     string `json:"name" validate:"required,max=200" label:"Name"`
	ParentID string `json:"parent_id" validate:"omitempty,objectid" label:"Parent folder"`
}

// permissionsInput lets the creator override the default lists. A nil
// field keeps the default for that list.
type permissionsInput struct {
	CanView     []string `json:"can_view"`
	CanEdit     []string `json:"can_edit"`
	CanDownload []string `json:"can_download"`
}

type fileInput struct {
	Name         string            `json:"name" validate:"required,max=200" label:"Name"`
	Type         string            `json:"type" validate:"required,oneof=video document image" label:"Type"`
	URL          string            `json:"url" validate:"required,httpurl" label:"URL"`
	Size         string            `json:"size" validate:"max=20" label:"Size"`
	ThumbnailURL string            `json:"thumbnail_url" validate:"omitempty,httpurl" label:"Thumbnail"`
	Description  string            `json:"description" validate:"max=5000" label:"Description"`
	ParentID     string            `json:"parent_id" validate:"omitempty,objectid" label:"Parent folder"`
	Permissions  *permissionsInput `json:"permissions"`
}

func (in *fileInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.URL = strings.TrimSpace(in.URL)
	in.Size = strings.TrimSpace(in.Size)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	in.ParentID = strings.TrimSpace(in.ParentID)
}

// permissions merges the overrides onto the defaults for entryType.
func (in *fileInput) permissions(entryType string) models.DrivePermissions {
	perms := drivepolicy.DefaultPermissions(entryType)
	if in.Permissions == nil {
		return perms
	}
	if in.Permissions.CanView != nil {
		perms.CanView = cleanList(in.Permissions.CanView)
	}
	if in.Permissions.CanEdit != nil {
		perms.CanEdit = cleanList(in.Permissions.CanEdit)
	}
	if in.Permissions.CanDownload != nil {
		perms.CanDownload = cleanList(in.Permissions.CanDownload)
	}
	return perms
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type renameInput struct {
	Name string `json:"name" validate:"required,max=200" label:"Name"`
}

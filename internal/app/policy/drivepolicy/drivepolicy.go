// Package drivepolicy evaluates the per-entry permission lists of the shared
// drive. A list grants access when it holds "all", the caller's role, or the
// caller's id. Admins bypass every list.
package drivepolicy

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// DefaultPermissions returns the permission lists a new entry of the given
// type starts with.
func DefaultPermissions(entryType string) models.DrivePermissions {
	if entryType == models.DriveFolder {
		return models.DrivePermissions{
			CanView:     []string{models.RoleAdmin, models.RoleStaff},
			CanEdit:     []string{models.RoleAdmin},
			CanDownload: []string{models.RoleAdmin, models.RoleStaff},
		}
	}
	return models.DrivePermissions{
		CanView:     []string{models.AssignAll},
		CanEdit:     []string{models.RoleAdmin},
		CanDownload: []string{models.AssignAll},
	}
}

// CanView reports whether p may see f in a folder listing.
func CanView(p *contentpolicy.Principal, f models.DriveFile) bool {
	return allowed(p, f.Permissions.CanView)
}

// CanEdit reports whether p may rename, star, share, or delete f.
func CanEdit(p *contentpolicy.Principal, f models.DriveFile) bool {
	return allowed(p, f.Permissions.CanEdit)
}

// CanDownload reports whether p may download f. Folders are never downloadable.
func CanDownload(p *contentpolicy.Principal, f models.DriveFile) bool {
	if f.IsFolder() {
		return false
	}
	return allowed(p, f.Permissions.CanDownload)
}

// FilterVisible returns the entries p may view, in order.
func FilterVisible(p *contentpolicy.Principal, files []models.DriveFile) []models.DriveFile {
	out := make([]models.DriveFile, 0, len(files))
	for _, f := range files {
		if CanView(p, f) {
			out = append(out, f)
		}
	}
	return out
}

func allowed(p *contentpolicy.Principal, list []string) bool {
	if p == nil {
		return false
	}
	if p.Role == models.RoleAdmin {
		return true
	}
	for _, v := range list {
		if v == models.AssignAll || v == p.Role || (p.ID != "" && v == p.ID) {
			return true
		}
	}
	return false
}

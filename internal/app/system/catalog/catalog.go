// Package catalog merges uploaded content, drive files, and catalogued
// videos into one list of content items, and slices that list for the
// library views: search, type filter, sort, season calendar, and the
// player's team/personal/private split.
//
// Access filtering is always done with contentpolicy; nothing here grants
// visibility on its own.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Categories assigned to merged items.
const (
	CategoryDrive = "google-drive"
	CategoryVideo = "vimeo"
)

// Sort orders accepted by Apply.
const (
	SortDate  = "date"  // newest first
	SortMatch = "match" // match number, ascending
	SortTitle = "title" // title, ascending
)

// DateLayout is the day format used by ContentItem.Date.
const DateLayout = "2006-01-02"

// Sources are the raw records to merge.
type Sources struct {
	Uploads []models.ContentItem
	Drive   []models.DriveFile
	Videos  []models.Video
}

// Merge converts drive files and videos into content items and appends them
// after the uploads. Drive folders are skipped.
func Merge(src Sources) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(src.Uploads)+len(src.Drive)+len(src.Videos))
	out = append(out, src.Uploads...)

	for _, f := range src.Drive {
		if f.IsFolder() {
			continue
		}
		out = append(out, FromDriveFile(f))
	}
	for _, v := range src.Videos {
		out = append(out, FromVideo(v))
	}
	return out
}

// FromDriveFile maps a drive file to a public content item.
func FromDriveFile(f models.DriveFile) models.ContentItem {
	return models.ContentItem{
		ID:          "gdrive-" + f.ID.Hex(),
		Title:       f.Name,
		Type:        f.Type,
		Date:        f.ModifiedTime.UTC().Format(DateLayout),
		URL:         f.URL,
		IsExternal:  true,
		Size:        f.Size,
		Description: "Google Drive " + f.Type,
		Category:    CategoryDrive,
		Thumbnail:   f.ThumbnailURL,
		AssignedTo:  models.AssignAll,
		CreatedAt:   f.ModifiedTime,
	}
}

// FromVideo maps a catalogued video to a content item. Videos not assigned
// to "all" become "players" items.
func FromVideo(v models.Video) models.ContentItem {
	assigned := models.AssignPlayers
	if v.IsAssignedToAll() {
		assigned = models.AssignAll
	}
	return models.ContentItem{
		ID:          "vimeo-" + v.ID.Hex(),
		Title:       v.Title,
		Type:        models.ContentVideo,
		Date:        v.UploadDate,
		URL:         v.EmbedURL,
		IsExternal:  true,
		Size:        v.Size,
		Description: v.Description,
		MatchNumber: v.Month,
		Category:    CategoryVideo,
		Thumbnail:   v.ThumbnailURL,
		AssignedTo:  assigned,
		CreatedAt:   v.CreatedAt,
	}
}

// Query narrows and orders a list of items.
type Query struct {
	// Search matches title, description, match number, or player name,
	// case-insensitively.
	Search string
	// Type keeps only items of this type; "" or "all" keeps everything.
	Type string
	// Sort is one of SortDate, SortMatch, SortTitle. "" means SortDate.
	Sort string
}

// Apply filters items by q and sorts them. The input is not modified.
func Apply(items []models.ContentItem, q Query) []models.ContentItem {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.ContentItem, 0, len(items))
	for _, c := range items {
		if q.Type != "" && q.Type != "all" && c.Type != q.Type {
			continue
		}
		if needle != "" && !matches(c, needle) {
			continue
		}
		out = append(out, c)
	}
	Sort(out, q.Sort)
	return out
}

func matches(c models.ContentItem, needle string) bool {
	for _, s := range []string{c.Title, c.Description, c.MatchNumber, c.PlayerName} {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Sort orders items in place. Ties keep their relative order.
func Sort(items []models.ContentItem, order string) {
	switch order {
	case SortMatch:
		col := collate.New(language.French, collate.Numeric)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].MatchNumber, items[j].MatchNumber) < 0
		})
	case SortTitle:
		col := collate.New(language.French, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Title, items[j].Title) < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return newer(items[i].Date, items[j].Date)
		})
	}
}

// newer reports whether day a sorts before day b in newest-first order.
// Unparseable dates sort last.
func newer(a, b string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case okA && okB:
		return ta.After(tb)
	case okA:
		return true
	default:
		return false
	}
}

// ParseDate reads the YYYY-MM-DD prefix of s.
func ParseDate(s string) (time.Time, bool) {
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PlayerView splits what a player can see into the three panels of the
// player dashboard.
type PlayerView struct {
	// Team holds visible items that are not personally assigned to the player.
	Team []models.ContentItem `json:"team"`
	// Personal holds items assigned to the player's id.
	Personal []models.ContentItem `json:"personal"`
	// Private holds private items the player is authorized for.
	Private []models.ContentItem `json:"private"`
}

// SplitForPlayer filters items through the access policy and splits the
// result. Order is preserved within each panel.
func SplitForPlayer(p *contentpolicy.Principal, items []models.ContentItem) PlayerView {
	view := PlayerView{
		Team:     []models.ContentItem{},
		Personal: []models.ContentItem{},
		Private:  []models.ContentItem{},
	}
	if p == nil {
		return view
	}
	for _, c := range contentpolicy.FilterContentByAccess(p, items) {
		switch {
		case c.IsPrivate:
			view.Private = append(view.Private, c)
		case p.ID != "" && c.AssignedTo == p.ID:
			view.Personal = append(view.Personal, c)
		default:
			view.Team = append(view.Team, c)
		}
	}
	return view
}

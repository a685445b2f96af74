package content

import (
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/htmlsanitize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/normalize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

type listResponse struct {
	Items []catalog.Row `json:"items"`
	Total int          `json:"total"`
}

// contentInput is the body of create and edit, sent either as JSON or as
// multipart form fields. AuthorizedUsers is a comma separated list of ids.
type contentInput struct {
	Title           string `json:"title" validate:"required,max=200" label:"Title"`
	Type            string `json:"type" validate:"required,oneof=video document" label:"Type"`
	Date            string `json:"date" validate:"required,day" label:"Date"`
	URL             string `json:"url" validate:"omitempty,httpurl" label:"URL"`
	IsExternal      bool   `json:"is_external"`
	Size            string `json:"size" validate:"max=20" label:"Size"`
	Description     string `json:"description" validate:"max=5000" label:"Description"`
	MatchNumber     string `json:"match_number" validate:"max=50" label:"Match number"`
	Category        string `json:"category" validate:"max=50" label:"Category"`
	PlayerName      string `json:"player_name" validate:"max=200" label:"Player name"`
	Thumbnail       string `json:"thumbnail" validate:"omitempty,httpurl" label:"Thumbnail"`
	AssignedTo      string `json:"assigned_to" validate:"max=100" label:"Assigned to"`
	IsPrivate       bool   `json:"is_private"`
	AuthorizedUsers string `json:"authorized_users"`
}

func (in *contentInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Date = strings.TrimSpace(in.Date)
	in.URL = strings.TrimSpace(in.URL)
	in.Size = strings.TrimSpace(in.Size)
	in.Description = htmlsanitize.Sanitize(strings.TrimSpace(in.Description))
	in.MatchNumber = strings.TrimSpace(in.MatchNumber)
	in.Category = strings.TrimSpace(in.Category)
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	in.Thumbnail = strings.TrimSpace(in.Thumbnail)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
}

func (in *contentInput) item() models.ContentItem {
	return models.ContentItem{
		Title:           in.Title,
		Type:            in.Type,
		Date:            in.Date,
		URL:             in.URL,
		IsExternal:      in.IsExternal,
		Size:            in.Size,
		Description:     in.Description,
		MatchNumber:     in.MatchNumber,
		Category:        in.Category,
		PlayerName:      in.PlayerName,
		Thumbnail:       in.Thumbnail,
		AssignedTo:      in.AssignedTo,
		IsPrivate:       in.IsPrivate,
		AuthorizedUsers: normalize.UserList(in.AuthorizedUsers),
	}
}

package systemusers

import (
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// userRow is the JSON shape of an account. The password hash never leaves
// the store.
type userRow struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Username       string  `json:"username"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	Position       string  `json:"position,omitempty"`
	JerseyNumber   string  `json:"jersey_number,omitempty"`
	ProfilePhoto   string  `json:"profile_photo,omitempty"`
	DriveFolderURL string  `json:"drive_folder_url,omitempty"`
	GoogleEmail    *string `json:"google_email,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func toRow(u models.User) userRow {
	return userRow{
		ID:             u.ID.Hex(),
		FullName:       u.FullName,
		Username:       u.Username,
		Role:           u.Role,
		Status:         u.Status,
		Position:       u.Position,
		JerseyNumber:   u.JerseyNumber,
		ProfilePhoto:   u.ProfilePhoto,
		DriveFolderURL: u.DriveFolderURL,
		GoogleEmail:    u.GoogleEmail,
		CreatedAt:      u.CreatedAt.Format("2006-01-02"),
	}
}

type listResponse struct {
	Users []userRow `json:"users"`
	Total int       `json:"total"`
}

// userInput is the body of POST /users and PUT /users/{id}.
type userInput struct {
	FullName       string `json:"full_name" validate:"required,max=200" label:"Full name"`
	Username       string `json:"username" validate:"required,max=100" label:"Username"`
	Password       string `json:"password" validate:"omitempty,min=6,max=72" label:"Password"`
	Role           string `json:"role" validate:"required,role" label:"Role"`
	Position       string `json:"position" validate:"max=50" label:"Position"`
	JerseyNumber   string `json:"jersey_number" validate:"max=3" label:"Jersey number"`
	ProfilePhoto   string `json:"profile_photo" validate:"omitempty,httpurl" label:"Profile photo"`
	DriveFolderURL string `json:"drive_folder_url" validate:"omitempty,httpurl" label:"Drive folder"`
	GoogleEmail    string `json:"google_email" validate:"omitempty,email" label:"Google email"`
}

func (in *userInput) trim() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.Position = strings.TrimSpace(in.Position)
	in.JerseyNumber = strings.TrimSpace(in.JerseyNumber)
	in.ProfilePhoto = strings.TrimSpace(in.ProfilePhoto)
	in.DriveFolderURL = strings.TrimSpace(in.DriveFolderURL)
	in.GoogleEmail = strings.TrimSpace(in.GoogleEmail)
}

func (in *userInput) googleEmail() *string {
	if in.GoogleEmail == "" {
		return nil
	}
	e := in.GoogleEmail
	return &e
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=active inactive" label:"Status"`
}

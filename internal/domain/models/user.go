// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a club account: players, staff, and admins.
//
// Position and JerseyNumber are only meaningful for players; the user store
// clears them for every other role.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"`     // player | staff | admin
	Status string `bson:"status" json:"status"` // active | inactive

	Position     string `bson:"position,omitempty" json:"position,omitempty"`
	JerseyNumber string `bson:"jersey_number,omitempty" json:"jersey_number,omitempty"`
	ProfilePhoto string `bson:"profile_photo,omitempty" json:"profile_photo,omitempty"`

	// DriveFolderURL links a player to a personal shared folder.
	DriveFolderURL string `bson:"drive_folder_url,omitempty" json:"drive_folder_url,omitempty"`

	// GoogleEmail lets an existing account sign in through Google.
	GoogleEmail *string `bson:"google_email,omitempty" json:"google_email,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status != StatusInactive
}

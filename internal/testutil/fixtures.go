package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures inserts test records directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for db.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active user with the given role and password.
// An empty password leaves the account without a hash.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, username, role, password string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Username:   username,
		UsernameCI: text.Fold(username),
		Role:       role,
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			f.t.Fatalf("hash password: %v", err)
		}
		u.PasswordHash = string(hash)
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateInactiveUser inserts a deactivated user.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, fullName, username, password string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, fullName, username, models.RolePlayer, password)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"status": models.StatusInactive},
	}); err != nil {
		f.t.Fatalf("deactivate user: %v", err)
	}
	u.Status = models.StatusInactive
	return u
}

// CreateContent inserts a content item. Missing id, title, type, and date
// are filled in.
func (f *Fixtures) CreateContent(ctx context.Context, c models.ContentItem) models.ContentItem {
	f.t.Helper()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if c.Title == "" {
		c.Title = "Item " + c.ID[len(c.ID)-4:]
	}
	if c.Type == "" {
		c.Type = models.ContentDocument
	}
	if c.Date == "" {
		c.Date = time.Now().UTC().Format("2006-01-02")
	}
	c.TitleCI = text.Fold(c.Title)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := f.db.Collection("content_items").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create content: %v", err)
	}
	return c
}

// CreateDriveFile inserts a drive entry.
func (f *Fixtures) CreateDriveFile(ctx context.Context, d models.DriveFile) models.DriveFile {
	f.t.Helper()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.NameCI = text.Fold(d.Name)
	if d.Path == nil {
		d.Path = []string{}
	}
	if d.ModifiedTime.IsZero() {
		d.ModifiedTime = time.Now().UTC()
	}
	if _, err := f.db.Collection("drive_files").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create drive file: %v", err)
	}
	return d
}

// CreateVideo inserts a catalogued video.
func (f *Fixtures) CreateVideo(ctx context.Context, v models.Video) models.Video {
	f.t.Helper()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	v.TitleCI = text.Fold(v.Title)
	if v.AssignedTo == nil {
		v.AssignedTo = []string{models.AssignAll}
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	if _, err := f.db.Collection("videos").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create video: %v", err)
	}
	return v
}

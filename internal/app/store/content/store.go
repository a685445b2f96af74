// Package contentstore persists the club's content library.
package contentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNoTitle   = errors.New("title is required")
	errBadType   = errors.New(`type must be "video"|"document"`)
	errNoAssign  = errors.New("assigned_to is required")
	errBadDate   = errors.New("date must be formatted YYYY-MM-DD")
	errNoContent = errors.New("either a URL or an uploaded file is required")
)

// IsValidation reports whether err came from input checks rather than the
// database.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, errNoTitle), errors.Is(err, errBadType), errors.Is(err, errNoAssign),
		errors.Is(err, errBadDate), errors.Is(err, errNoContent):
		return true
	}
	return false
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content_items")}
}

func validate(c *models.ContentItem) error {
	c.Title = strings.TrimSpace(c.Title)
	c.TitleCI = text.Fold(c.Title)
	c.AssignedTo = strings.TrimSpace(c.AssignedTo)
	c.URL = strings.TrimSpace(c.URL)

	if c.Title == "" {
		return errNoTitle
	}
	if c.Type != models.ContentVideo && c.Type != models.ContentDocument {
		return errBadType
	}
	if !c.IsPrivate && c.AssignedTo == "" {
		return errNoAssign
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return errBadDate
	}
	if c.URL == "" && c.FilePath == "" {
		return errNoContent
	}
	return nil
}

// Create validates and inserts c, assigning a new id.
func (s *Store) Create(ctx context.Context, c models.ContentItem) (models.ContentItem, error) {
	if err := validate(&c); err != nil {
		return models.ContentItem{}, err
	}
	c.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	c.CreatedAt = now
	if c.UploadDate == "" {
		c.UploadDate = now.Format("2006-01-02")
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.ContentItem{}, err
	}
	return c, nil
}

// GetByID loads one item. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	var c models.ContentItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every item, newest date first.
func (s *Store) List(ctx context.Context) ([]models.ContentItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.ContentItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the editable fields of item id. Stored-file fields and
// authorship are kept. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Update(ctx context.Context, id string, c models.ContentItem) (*models.ContentItem, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.FilePath = cur.FilePath
	c.FileName = cur.FileName
	c.FileSize = cur.FileSize
	c.ContentType = cur.ContentType
	if err := validate(&c); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"title":            c.Title,
		"title_ci":         c.TitleCI,
		"type":             c.Type,
		"date":             c.Date,
		"url":              c.URL,
		"is_external":      c.IsExternal,
		"size":             c.Size,
		"description":      c.Description,
		"match_number":     c.MatchNumber,
		"category":         c.Category,
		"player_name":      c.PlayerName,
		"thumbnail":        c.Thumbnail,
		"assigned_to":      c.AssignedTo,
		"is_private":       c.IsPrivate,
		"authorized_users": c.AuthorizedUsers,
		"updated_at":       now,
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Delete removes item id and returns the deleted record so the caller can
// clean up its stored file. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Delete(ctx context.Context, id string) (*models.ContentItem, error) {
	var c models.ContentItem
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Counts summarizes the library.
type Counts struct {
	Total   int64 `json:"total"`
	Private int64 `json:"private"`
	Videos  int64 `json:"videos"`
}

// Count returns library totals.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var out Counts
	var err error
	if out.Total, err = s.c.CountDocuments(ctx, bson.M{}); err != nil {
		return Counts{}, err
	}
	if out.Private, err = s.c.CountDocuments(ctx, bson.M{"is_private": true}); err != nil {
		return Counts{}, err
	}
	if out.Videos, err = s.c.CountDocuments(ctx, bson.M{"type": models.ContentVideo}); err != nil {
		return Counts{}, err
	}
	return out, nil
}

package videostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults applied by Create.
const (
	DefaultDuration = "0:00"
	DefaultQuality  = "1080p"
	DefaultSize     = "0 MB"
)

var (
	ErrBadTitle    = errors.New("title is required")
	ErrBadEmbedURL = errors.New("embed URL must be an absolute http(s) URL")
	ErrBadDate     = errors.New("upload date must be formatted YYYY-MM-DD")
	ErrBadPrivacy  = errors.New(`privacy must be "public"|"private"|"domain-restricted"`)
	ErrBadMonth    = errors.New("month must be a season key such as october-2025")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("videos")}
}

// Create fills defaults, validates, and inserts v. The month key and
// season are derived from the upload date when missing.
func (s *Store) Create(ctx context.Context, v models.Video) (models.Video, error) {
	v.Title = strings.TrimSpace(v.Title)
	v.EmbedURL = strings.TrimRight(strings.TrimSpace(v.EmbedURL), "/")
	if v.Title == "" {
		return models.Video{}, ErrBadTitle
	}
	if !urlutil.IsValidAbsHTTPURL(v.EmbedURL) {
		return models.Video{}, ErrBadEmbedURL
	}

	now := time.Now().UTC()
	if v.UploadDate == "" {
		v.UploadDate = now.Format(catalog.DateLayout)
	}
	uploaded, err := time.Parse(catalog.DateLayout, v.UploadDate)
	if err != nil {
		return models.Video{}, ErrBadDate
	}
	if v.Month == "" {
		v.Month = catalog.MonthKey(uploaded.Month(), uploaded.Year())
	} else if _, _, ok := catalog.ParseMonthKey(v.Month); !ok {
		return models.Video{}, ErrBadMonth
	}
	if v.Season == "" {
		v.Season = catalog.SeasonLabel(catalog.SeasonStartYear(uploaded))
	}

	switch v.Privacy {
	case "":
		v.Privacy = models.PrivacyDomainRestricted
	case models.PrivacyPublic, models.PrivacyPrivate, models.PrivacyDomainRestricted:
	default:
		return models.Video{}, ErrBadPrivacy
	}
	if v.Duration == "" {
		v.Duration = DefaultDuration
	}
	if v.Quality == "" {
		v.Quality = DefaultQuality
	}
	if v.Size == "" {
		v.Size = DefaultSize
	}
	if v.ThumbnailURL == "" {
		v.ThumbnailURL = models.DefaultVideoThumbnailURL
	}
	if len(v.AssignedTo) == 0 {
		v.AssignedTo = []string{models.AssignAll}
	}

	v.ID = primitive.NewObjectID()
	v.TitleCI = text.Fold(v.Title)
	v.Views = 0
	v.CreatedAt = now
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Video{}, err
	}
	return v, nil
}

// GetByID loads one video. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var v models.Video
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns every video, newest upload first.
func (s *Store) List(ctx context.Context) ([]models.Video, error) {
	return s.find(ctx, bson.M{})
}

// ListByMonth returns the videos filed under a month key, newest first.
func (s *Store) ListByMonth(ctx context.Context, month string) ([]models.Video, error) {
	return s.find(ctx, bson.M{"month": month})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "upload_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Video{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordView increments the view counter and returns the new count.
func (s *Store) RecordView(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var v models.Video
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&v)
	if err != nil {
		return 0, err
	}
	return v.Views, nil
}

// Delete removes id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the number of catalogued videos.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

package drivefilestore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrFolderNotEmpty = errors.New("folder is not empty")
	ErrParentNotFound = errors.New("parent folder not found")
	ErrBadName        = errors.New("name is required")
	ErrBadType        = errors.New(`type must be "video"|"document"|"image"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("drive_files")}
}

// GetByID loads one entry. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.DriveFile, error) {
	var f models.DriveFile
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListChildren returns the entries directly under parentID (nil = root),
// folders first and then by name. A non-empty search matches names
// case-insensitively.
func (s *Store) ListChildren(ctx context.Context, parentID *primitive.ObjectID, search string) ([]models.DriveFile, error) {
	filter := bson.M{}
	if parentID == nil {
		filter["parent_id"] = bson.M{"$exists": false}
	} else {
		filter["parent_id"] = *parentID
	}
	if q := text.Fold(strings.TrimSpace(search)); q != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(q)}
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var folders, files []models.DriveFile
	for cur.Next(ctx) {
		var f models.DriveFile
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		if f.IsFolder() {
			folders = append(folders, f)
		} else {
			files = append(files, f)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return append(append(make([]models.DriveFile, 0, len(folders)+len(files)), folders...), files...), nil
}

// ListFiles returns every non-folder entry, most recently modified first.
func (s *Store) ListFiles(ctx context.Context) ([]models.DriveFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "modified_time", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"type": bson.M{"$ne": models.DriveFolder}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	files := []models.DriveFile{}
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// CountFiles counts non-folder entries.
func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"type": bson.M{"$ne": models.DriveFolder}})
}

// childPath resolves the breadcrumb for an entry placed under parentID.
func (s *Store) childPath(ctx context.Context, parentID *primitive.ObjectID) ([]string, error) {
	if parentID == nil {
		return []string{}, nil
	}
	parent, err := s.GetByID(ctx, *parentID)
	if err == mongo.ErrNoDocuments || (err == nil && !parent.IsFolder()) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, err
	}
	return append(append([]string{}, parent.Path...), parent.Name), nil
}

func (s *Store) insert(ctx context.Context, f models.DriveFile) (models.DriveFile, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return models.DriveFile{}, ErrBadName
	}
	path, err := s.childPath(ctx, f.ParentID)
	if err != nil {
		return models.DriveFile{}, err
	}
	f.ID = primitive.NewObjectID()
	f.NameCI = text.Fold(f.Name)
	f.Path = path
	f.ModifiedTime = time.Now().UTC()
	if f.Permissions.CanView == nil && f.Permissions.CanEdit == nil && f.Permissions.CanDownload == nil {
		f.Permissions = drivepolicy.DefaultPermissions(f.Type)
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.DriveFile{}, err
	}
	return f, nil
}

// CreateFolder adds a folder under parentID with the default folder permissions.
func (s *Store) CreateFolder(ctx context.Context, name string, parentID *primitive.ObjectID, owner string, createdBy *primitive.ObjectID) (models.DriveFile, error) {
	return s.insert(ctx, models.DriveFile{
		Name:        name,
		Type:        models.DriveFolder,
		Owner:       owner,
		ParentID:    parentID,
		CreatedByID: createdBy,
	})
}

// AddFile adds a linked file. Empty permissions get the file defaults.
func (s *Store) AddFile(ctx context.Context, f models.DriveFile) (models.DriveFile, error) {
	switch f.Type {
	case models.DriveVideo, models.DriveDocument, models.DriveImage:
	default:
		return models.DriveFile{}, ErrBadType
	}
	return s.insert(ctx, f)
}

// Rename changes the name of id. Children keep their stored breadcrumb.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBadName
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":          name,
		"name_ci":       text.Fold(name),
		"modified_time": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ToggleStar flips the starred flag and returns the new value.
func (s *Store) ToggleStar(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.toggle(ctx, id, "starred")
}

// ToggleShare flips the shared flag and returns the new value.
func (s *Store) ToggleShare(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.toggle(ctx, id, "shared")
}

func (s *Store) toggle(ctx context.Context, id primitive.ObjectID, field string) (bool, error) {
	var out models.DriveFile
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := mongo.Pipeline{{{Key: "$set", Value: bson.M{field: bson.M{"$not": bson.A{"$" + field}}}}}}
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return false, err
	}
	if field == "starred" {
		return out.Starred, nil
	}
	return out.Shared, nil
}

// Delete removes id. Folders must be empty.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.c.CountDocuments(ctx, bson.M{"parent_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrFolderNotEmpty
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

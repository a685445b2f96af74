package userstore

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/normalize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	// ErrDuplicateGoogleEmail is returned when the Google address is linked to another account.
	ErrDuplicateGoogleEmail = errors.New("this Google address is already linked to another user")

	errBadRole     = errors.New(`role must be "player"|"staff"|"admin"`)
	errBadStatus   = errors.New(`status must be "active"|"inactive"`)
	errNoUsername  = errors.New("username is required")
	errNoFullName  = errors.New("full name is required")
	errNoGoogleKey = errors.New("google email is required")
)

// IsValidation reports whether err is an input error returned by Create,
// Update, or SetStatus rather than a database failure.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, errBadRole), errors.Is(err, errBadStatus),
		errors.Is(err, errNoUsername), errors.Is(err, errNoFullName),
		errors.Is(err, authutil.ErrPasswordTooShort), errors.Is(err, authutil.ErrPasswordTooLong):
		return true
	}
	return false
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs returns the users whose ids are listed, without password hashes.
// Unknown ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	opts := options.Find().SetProjection(bson.M{"password_hash": 0})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername looks up a user by case-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(normalize.Username(username))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleEmail finds the account linked to a Google address.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByGoogleEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, errNoGoogleKey
	}
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"google_email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create validates and inserts a new user. password is hashed with bcrypt;
// an empty password creates an account that can only sign in with Google.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	if err := prepare(&u); err != nil {
		return models.User{}, err
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	if !models.IsValidStatus(u.Status) {
		return models.User{}, errBadStatus
	}
	if password != "" {
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, dupErr(err)
	}
	return u, nil
}

// prepare normalizes u in place and enforces the role rules.
func prepare(u *models.User) error {
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Role = normalize.Role(u.Role)
	u.Status = normalize.Status(u.Status)

	if u.FullName == "" {
		return errNoFullName
	}
	if u.Username == "" {
		return errNoUsername
	}
	if !models.IsValidRole(u.Role) {
		return errBadRole
	}
	if u.Role != models.RolePlayer {
		u.Position = ""
		u.JerseyNumber = ""
	}
	if u.GoogleEmail != nil {
		e := normalize.Email(*u.GoogleEmail)
		if e == "" {
			u.GoogleEmail = nil
		} else {
			u.GoogleEmail = &e
		}
	}
	return nil
}

func dupErr(err error) error {
	if wafflemongo.IsDup(err) {
		if strings.Contains(err.Error(), "google_email") {
			return ErrDuplicateGoogleEmail
		}
		return ErrDuplicateUsername
	}
	return err
}

// Update holds the editable fields of a user. An empty Password keeps the
// current one.
type Update struct {
	FullName       string
	Username       string
	Role           string
	Position       string
	JerseyNumber   string
	ProfilePhoto   string
	DriveFolderURL string
	GoogleEmail    *string
	Password       string
}

// Update rewrites the editable fields of user id.
// Returns mongo.ErrNoDocuments if the user does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	u := models.User{
		FullName:       upd.FullName,
		Username:       upd.Username,
		Role:           upd.Role,
		Position:       strings.TrimSpace(upd.Position),
		JerseyNumber:   strings.TrimSpace(upd.JerseyNumber),
		ProfilePhoto:   strings.TrimSpace(upd.ProfilePhoto),
		DriveFolderURL: strings.TrimSpace(upd.DriveFolderURL),
		GoogleEmail:    upd.GoogleEmail,
	}
	if err := prepare(&u); err != nil {
		return err
	}

	set := bson.M{
		"full_name":        u.FullName,
		"full_name_ci":     u.FullNameCI,
		"username":         u.Username,
		"username_ci":      u.UsernameCI,
		"role":             u.Role,
		"position":         u.Position,
		"jersey_number":    u.JerseyNumber,
		"profile_photo":    u.ProfilePhoto,
		"drive_folder_url": u.DriveFolderURL,
		"updated_at":       time.Now().UTC(),
	}
	unset := bson.M{}
	if u.GoogleEmail != nil {
		set["google_email"] = *u.GoogleEmail
	} else {
		unset["google_email"] = ""
	}
	if upd.Password != "" {
		hash, err := authutil.HashPassword(upd.Password)
		if err != nil {
			return err
		}
		set["password_hash"] = hash
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return dupErr(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus activates or deactivates user id.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !models.IsValidStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes user id and returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListFilter narrows List.
type ListFilter struct {
	Role   string // "" for every role
	Status string // "" for every status
	// Search matches name, username, or role, ignoring case and accents.
	Search string
}

// List returns users matching f, ordered by name with French collation.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.User, error) {
	q := bson.M{}
	if r := normalize.Role(f.Role); r != "" {
		q["role"] = r
	}
	if st := normalize.Status(f.Status); st != "" {
		q["status"] = st
	}
	if needle := text.Fold(strings.TrimSpace(f.Search)); needle != "" {
		pat := primitive.Regex{Pattern: regexp.QuoteMeta(needle), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"full_name_ci": pat},
			bson.M{"username_ci": pat},
			bson.M{"role": pat},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password_hash": 0})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	col := collate.New(language.French, collate.IgnoreCase)
	sort.SliceStable(users, func(i, j int) bool {
		return col.CompareString(users[i].FullName, users[j].FullName) < 0
	})
	return users, nil
}

// CountByRole returns the number of users per role.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]int64{
		models.RoleAdmin:  0,
		models.RoleStaff:  0,
		models.RolePlayer: 0,
	}
	for cur.Next(ctx) {
		var row struct {
			Role string `bson:"_id"`
			N    int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Role] = row.N
	}
	return out, cur.Err()
}

// CountAdmins returns the number of active admins.
func (s *Store) CountAdmins(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": models.RoleAdmin, "status": models.StatusActive})
}

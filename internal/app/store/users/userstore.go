// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/apollo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrNotFound       = errors.New("user not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.EmailCI = text.Fold(u.Email)
	if u.Permissions == nil {
		u.Permissions = []models.Permission{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail matches on the folded email, so case never matters.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email_ci": text.Fold(email)})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns every user in creation order.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, bson.M{})
}

// ListInvitedBy returns the users who signed up with inviterID's link.
func (s *Store) ListInvitedBy(ctx context.Context, inviterID primitive.ObjectID) ([]models.User, error) {
	return s.find(ctx, bson.M{"invited_by": inviterID})
}

// CountByTeam counts the members of a team.
func (s *Store) CountByTeam(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"team_id": teamID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
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

// Update names the fields to change. Nil fields are left alone.
type Update struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	Document     *string
	CEP          *string
	Address      *string
	Number       *string
	Complement   *string
	Neighborhood *string
	City         *string
	State        *string
	IsAdmin      *bool
	Permissions  *[]models.Permission
	TeamID       *primitive.ObjectID // NilObjectID removes the user from their team
	PasswordHash *string
}

func (up Update) set() bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	if up.Name != nil {
		set["name"] = *up.Name
		set["name_ci"] = text.Fold(*up.Name)
	}
	if up.Email != nil {
		set["email"] = *up.Email
		set["email_ci"] = text.Fold(*up.Email)
	}
	str("phone_number", up.PhoneNumber)
	str("document", up.Document)
	str("cep", up.CEP)
	str("address", up.Address)
	str("number", up.Number)
	str("complement", up.Complement)
	str("neighborhood", up.Neighborhood)
	str("city", up.City)
	str("state", up.State)
	str("password_hash", up.PasswordHash)
	if up.IsAdmin != nil {
		set["is_admin"] = *up.IsAdmin
	}
	if up.Permissions != nil {
		perms := *up.Permissions
		if perms == nil {
			perms = []models.Permission{}
		}
		set["permissions"] = perms
	}
	if up.TeamID != nil && !up.TeamID.IsZero() {
		set["team_id"] = *up.TeamID
	}
	return set
}

func (up Update) doc() bson.M {
	doc := bson.M{"$set": up.set()}
	if up.TeamID != nil && up.TeamID.IsZero() {
		doc["$unset"] = bson.M{"team_id": ""}
	}
	return doc
}

// Update applies up and returns the stored document after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, up Update) (models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, up.doc(), opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/apollo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("invitation not found")
	ErrDuplicateToken = errors.New("invitation already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

// GetOrCreate returns inviterID's invitation, creating it on first use. When
// two requests race, the unique inviter index makes the loser re-read the
// winner's document.
func (s *Store) GetOrCreate(ctx context.Context, inviterID primitive.ObjectID) (models.Invitation, error) {
	inv, err := s.GetByInviter(ctx, inviterID)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return inv, err
	}

	inv, err = s.Create(ctx, inviterID)
	if errors.Is(err, ErrDuplicateToken) {
		return s.GetByInviter(ctx, inviterID)
	}
	return inv, err
}

// Create stores a new invitation with a random token.
func (s *Store) Create(ctx context.Context, inviterID primitive.ObjectID) (models.Invitation, error) {
	inv := models.Invitation{
		ID:        primitive.NewObjectID(),
		Token:     uuid.NewString(),
		InviterID: inviterID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invitation{}, ErrDuplicateToken
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

func (s *Store) GetByInviter(ctx context.Context, inviterID primitive.ObjectID) (models.Invitation, error) {
	return s.findOne(ctx, bson.M{"inviter_id": inviterID})
}

// GetByToken resolves the token carried by a signup link.
func (s *Store) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	return s.findOne(ctx, bson.M{"token": token})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Invitation, error) {
	var inv models.Invitation
	if err := s.c.FindOne(ctx, filter).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Invitation{}, ErrNotFound
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

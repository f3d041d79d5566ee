// internal/app/store/passwordresets/passwordresetstore.go
package passwordresetstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultTTL is how long a reset link stays usable.
const DefaultTTL = time.Hour

// ErrNotFound covers unknown, used and expired tokens alike.
var ErrNotFound = errors.New("reset token not found or expired")

// Reset is one outstanding password reset. Only the SHA-256 of the token is
// stored; the token itself travels in the link and nowhere else.
type Reset struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Email     string             `bson:"email"`
	TokenHash string             `bson:"token_hash"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New returns a Store on the password_resets collection. A non-positive ttl
// means DefaultTTL.
func New(db *mongo.Database, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{c: db.Collection("password_resets"), ttl: ttl}
}

// TTL reports the lifetime given to new tokens.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create issues a reset token for userID and returns it. Earlier tokens for
// the same user are revoked, so only the newest link works.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (string, Reset, error) {
	token, err := generateToken()
	if err != nil {
		return "", Reset{}, err
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return "", Reset{}, err
	}

	now := time.Now().UTC()
	rs := Reset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, rs); err != nil {
		return "", Reset{}, err
	}
	return token, rs, nil
}

// Get looks up a live token without using it up.
func (s *Store) Get(ctx context.Context, token string) (Reset, error) {
	var rs Reset
	err := s.c.FindOne(ctx, liveFilter(token)).Decode(&rs)
	return rs, notFound(err)
}

// Consume looks up a live token and deletes it in the same operation, so two
// concurrent resets with one link cannot both succeed.
func (s *Store) Consume(ctx context.Context, token string) (Reset, error) {
	var rs Reset
	err := s.c.FindOneAndDelete(ctx, liveFilter(token)).Decode(&rs)
	return rs, notFound(err)
}

// DeleteByUser revokes every outstanding token of userID.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// The TTL index removes expired documents only about once a minute, so the
// expiry is checked here as well.
func liveFilter(token string) bson.M {
	return bson.M{
		"token_hash": hashToken(token),
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

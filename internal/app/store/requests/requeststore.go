// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("request not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

// Create stores req with its status defaults applied.
func (s *Store) Create(ctx context.Context, req models.Request) (models.Request, error) {
	now := time.Now().UTC()
	req.ID = primitive.NewObjectID()
	req.NameCI = text.Fold(req.Name)
	req.ApplyDefaults()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	var req models.Request
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Request{}, ErrNotFound
		}
		return models.Request{}, err
	}
	return req, nil
}

// List returns every request in creation order.
func (s *Store) List(ctx context.Context) ([]models.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reqs := []models.Request{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Update overwrites the editable fields and returns the stored document.
// Empty statuses are reset to their defaults, as on create.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, req models.Request) (models.Request, error) {
	req.ApplyDefaults()
	set := bson.M{
		"cpf_cnpj":   req.CPFCNPJ,
		"name":       req.Name,
		"name_ci":    text.Fold(req.Name),
		"phone":      req.Phone,
		"status":     req.Status,
		"serasa":     req.Serasa,
		"boa_vista":  req.BoaVista,
		"cenprot":    req.Cenprot,
		"spc":        req.SPC,
		"updated_at": time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Request
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Request{}, ErrNotFound
		}
		return models.Request{}, err
	}
	return out, nil
}

// Delete removes a request by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

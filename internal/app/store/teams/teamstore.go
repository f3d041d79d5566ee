// internal/app/store/teams/teamstore.go
package teamstore

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

var ErrNotFound = errors.New("team not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

func (s *Store) Create(ctx context.Context, team models.Team) (models.Team, error) {
	now := time.Now().UTC()
	team.ID = primitive.NewObjectID()
	team.NameCI = text.Fold(team.Name)
	if team.Status == "" {
		team.Status = models.TeamActive
	}
	team.CreatedAt = now
	team.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, team); err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var team models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&team); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Team{}, ErrNotFound
		}
		return models.Team{}, err
	}
	return team, nil
}

// List returns every team in creation order.
func (s *Store) List(ctx context.Context) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	teams := []models.Team{}
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Update overwrites the editable fields with team's values and returns the
// stored document. Empty status keeps the current one.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, team models.Team) (models.Team, error) {
	set := bson.M{
		"name":          team.Name,
		"name_ci":       text.Fold(team.Name),
		"description":   team.Description,
		"members_limit": team.MembersLimit,
		"members":       team.Members,
		"lead_name":     team.LeadName,
		"lead_email":    team.LeadEmail,
		"lead_phone":    team.LeadPhone,
		"department":    team.Department,
		"location":      team.Location,
		"start_date":    team.StartDate,
		"tags":          team.Tags,
		"updated_at":    time.Now().UTC(),
	}
	if team.Status != "" {
		set["status"] = team.Status
	}
	if team.Plan != "" {
		set["plan"] = team.Plan
	}
	if team.PlanStatus != "" {
		set["plan_status"] = team.PlanStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Team
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Team{}, ErrNotFound
		}
		return models.Team{}, err
	}
	return out, nil
}

// Delete removes a team by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

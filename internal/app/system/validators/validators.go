// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collections lists every collection EnsureAll creates, in creation order.
var Collections = []string{"users", "teams", "requests", "invitations", "password_resets", "audit_events"}

// EnsureAll creates the collections (if missing) and attaches JSON-Schema
// validators. Servers that do not support collMod validators are logged
// and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	schemas := map[string]bson.M{
		"users":           usersSchema(),
		"teams":           teamsSchema(),
		"requests":        requestsSchema(),
		"invitations":     invitationsSchema(),
		"password_resets": passwordResetsSchema(),
		"audit_events":    auditSchema(),
	}

	var problems []string
	for _, coll := range Collections {
		if err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			continue
		}
		if err := setValidator(ctx, db, coll, schemas[coll]); err != nil {
			if isUnsupported(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				continue
			}
			problems = append(problems, coll+": "+err.Error())
			continue
		}
		logger.Debug("validator ensured", zap.String("collection", coll))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && slices.Contains(names, name) {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExists(err) {
			return nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	logger.Info("created collection", zap.String("collection", name))
	return nil
}

// setValidator uses the moderate level so documents written before a schema
// change can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

func commandError(err error, codes ...int32) (mongo.CommandError, bool) {
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		return ce, false
	}
	return ce, slices.Contains(codes, ce.Code)
}

func isNamespaceExists(err error) bool {
	if _, ok := commandError(err, 48); ok {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}

// isUnsupported matches "no such command" (59) and "not implemented" (115),
// which DocumentDB and some managed deployments return for collMod.
func isUnsupported(err error) bool {
	if _, ok := commandError(err, 59, 115); ok {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "no such command") ||
		strings.Contains(s, "not implemented") ||
		strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "email_ci", "permissions"},
			"properties": bson.M{
				"name":     bson.M{"bsonType": "string"},
				"email":    nonBlank,
				"email_ci": nonBlank,
				"is_admin": bson.M{"bsonType": "bool"},
				"team_id":  bson.M{"bsonType": "objectId"},
				"permissions": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"name", "module"},
						"properties": bson.M{
							"name":   bson.M{"enum": bson.A{string(models.ActionCreate), string(models.ActionUpdate), string(models.ActionDelete)}},
							"module": bson.M{"enum": bson.A{string(models.ModuleUsers), string(models.ModuleTeams), string(models.ModuleRequests)}},
						},
					},
				},
			},
		},
	}
}

func teamsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "status"},
			"properties": bson.M{
				"name":    nonBlank,
				"name_ci": nonBlank,
				"status":  bson.M{"enum": bson.A{models.TeamActive, models.TeamInactive}},
			},
		},
	}
}

func requestsSchema() bson.M {
	bureau := bson.M{"enum": bson.A{
		string(models.BureauClean), string(models.BureauPending),
		string(models.BureauDenied), string(models.BureauResent),
	}}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"cpf_cnpj", "name", "status", "serasa", "boa_vista", "cenprot", "spc"},
			"properties": bson.M{
				"cpf_cnpj":  nonBlank,
				"name":      nonBlank,
				"status":    nonBlank,
				"serasa":    bureau,
				"boa_vista": bureau,
				"cenprot":   bureau,
				"spc":       bureau,
			},
		},
	}
}

func invitationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"token", "inviter_id", "created_at"},
			"properties": bson.M{
				"token":      nonBlank,
				"inviter_id": bson.M{"bsonType": "objectId"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func passwordResetsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "token_hash", "expires_at", "created_at"},
			"properties": bson.M{
				"user_id":    bson.M{"bsonType": "objectId"},
				"email":      bson.M{"bsonType": "string"},
				"token_hash": nonBlank,
				"expires_at": bson.M{"bsonType": "date"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func auditSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"timestamp", "category", "event_type"},
			"properties": bson.M{
				"timestamp":  bson.M{"bsonType": "date"},
				"category":   nonBlank,
				"event_type": nonBlank,
				"success":    bson.M{"bsonType": "bool"},
			},
		},
	}
}

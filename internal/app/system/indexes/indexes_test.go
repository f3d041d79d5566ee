package indexes_test

import (
	"testing"

	"github.com/dalemusser/apollo/internal/app/system/indexes"
	"github.com/dalemusser/apollo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"users":           {"uniq_users_emailci", "idx_users_createdat_id", "idx_users_invitedby_createdat", "idx_users_team"},
		"teams":           {"idx_teams_createdat_id", "idx_teams_nameci"},
		"requests":        {"idx_requests_createdat_id", "idx_requests_cpfcnpj"},
		"invitations":     {"uniq_invitations_token", "uniq_invitations_inviter"},
		"password_resets": {"uniq_passwordresets_tokenhash", "idx_passwordresets_user", "ttl_passwordresets_expiresat"},
		"audit_events": {
			"idx_audit_timestamp_id", "idx_audit_user_timestamp",
			"idx_audit_actor_timestamp", "idx_audit_category_type_timestamp",
		},
	}
	for coll, names := range expected {
		got := indexNames(t, db.Collection(coll))
		for _, name := range names {
			if !got[name] {
				t.Errorf("%s: expected index %q to exist", coll, name)
			}
		}
	}
}

func indexNames(t *testing.T, c *mongo.Collection) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := c.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

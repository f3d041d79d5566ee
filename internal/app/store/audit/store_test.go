package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	"github.com/dalemusser/apollo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()
	base := time.Now().UTC().Add(-time.Minute)

	events := []audit.Event{
		{Timestamp: base, Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &userID, Success: true},
		{Timestamp: base.Add(time.Second), Category: audit.CategoryAdmin, EventType: audit.EventUserUpdated, UserID: &userID, ActorID: &actorID, Success: true},
		{Timestamp: base.Add(2 * time.Second), Category: audit.CategoryAdmin, EventType: audit.EventTeamCreated, ActorID: &actorID, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	byUser, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(byUser) != 2 || byUser[0].EventType != audit.EventUserUpdated {
		t.Errorf("GetByUser: expected 2 events newest first, got %+v", byUser)
	}

	byActor, err := store.GetByActor(ctx, actorID, 1)
	if err != nil {
		t.Fatalf("GetByActor: %v", err)
	}
	if len(byActor) != 1 || byActor[0].EventType != audit.EventTeamCreated {
		t.Errorf("GetByActor limit 1: got %+v", byActor)
	}

	admin, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(admin) != 2 {
		t.Errorf("expected 2 admin events, got %d", len(admin))
	}
}

func TestStore_Log_AssignsIDAndTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventSignup, UserID: &userID}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	got, err := store.GetByUser(ctx, userID, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByUser: %v, %d events", err, len(got))
	}
	if got[0].ID.IsZero() || got[0].Timestamp.IsZero() {
		t.Errorf("expected ID and timestamp to be set, got %+v", got[0])
	}
}

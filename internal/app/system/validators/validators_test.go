package validators_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/system/indexes"
	"github.com/dalemusser/gamecenter/internal/app/system/validators"
	"github.com/dalemusser/gamecenter/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db, nil); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesFeedbackCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{"name": indexes.FeedbackCollection})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected %q to exist, got %v", indexes.FeedbackCollection, names)
	}
}

func TestEnsureAll_RejectsInvalidReports(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection(indexes.FeedbackCollection)

	valid := bson.M{
		"ref":        "r-1",
		"game_id":    "g1",
		"message":    "download link is broken",
		"created_at": time.Now(),
	}
	if _, err := c.InsertOne(ctx, valid); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	invalid := []bson.M{
		{"ref": "r-2", "game_id": "g1", "created_at": time.Now()},
		{"ref": "r-3", "game_id": "g1", "message": "   ", "created_at": time.Now()},
		{"ref": "r-4", "game_id": "g1", "message": strings.Repeat("x", 1001), "created_at": time.Now()},
	}
	for _, doc := range invalid {
		if _, err := c.InsertOne(ctx, doc); err == nil {
			t.Errorf("expected %v to be rejected", doc["ref"])
		}
	}
}

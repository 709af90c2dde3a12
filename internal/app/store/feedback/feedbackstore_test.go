package feedbackstore_test

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	feedbackstore "github.com/dalemusser/gamecenter/internal/app/store/feedback"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/gamecenter/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := store.Create(ctx, models.FeedbackReport{
		GameID:   "g1",
		GameName: "Star Quest",
		Message:  "download link is broken",
		IP:       "192.0.2.1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rep.Ref == "" || rep.ID.IsZero() {
		t.Fatalf("expected Ref and ID to be assigned, got %+v", rep)
	}
	if time.Since(rep.CreatedAt) > time.Minute {
		t.Errorf("CreatedAt should be set to now, got %v", rep.CreatedAt)
	}

	found, err := store.GetByRef(ctx, rep.Ref)
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if found.GameID != "g1" || found.Message != "download link is broken" {
		t.Errorf("unexpected report: %+v", found)
	}
}

func TestStore_CreateFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := httptest.NewRequest("POST", "/game/g1/feedback", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	req.Header.Set("User-Agent", "test-agent")

	rep, err := store.CreateFrom(ctx, req, testutil.SampleDetails("g1", "Star Quest"), "Sam", "404 on mirror", "me@example.com")
	if err != nil {
		t.Fatalf("CreateFrom failed: %v", err)
	}
	if rep.IP != "203.0.113.5" {
		t.Errorf("IP: got %q, want 203.0.113.5", rep.IP)
	}
	if rep.UserAgent != "test-agent" {
		t.Errorf("UserAgent: got %q", rep.UserAgent)
	}
	if rep.GameName != "Star Quest" || rep.Reporter != "Sam" || rep.Contact != "me@example.com" {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestStore_GetByRef_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByRef(ctx, "missing")
	if !errors.Is(err, feedbackstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetByRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := fx.CreateFeedbackReport(ctx, "g1", "mirror returns 404")
	fx.CreateFeedbackReport(ctx, "g2", "other game")

	got, err := store.GetByRef(ctx, want.Ref)
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if got.GameID != "g1" || got.Message != "mirror returns 404" {
		t.Errorf("unexpected report: %+v", got)
	}
}

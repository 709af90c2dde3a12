package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/system/indexes"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateFeedbackReport inserts a report for gameID with the given message.
func (f *Fixtures) CreateFeedbackReport(ctx context.Context, gameID, message string) models.FeedbackReport {
	f.t.Helper()

	rep := models.FeedbackReport{
		ID:        primitive.NewObjectID(),
		Ref:       uuid.NewString(),
		GameID:    gameID,
		GameName:  "Test Game " + gameID,
		Message:   message,
		IP:        "192.0.2.1",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection(indexes.FeedbackCollection).InsertOne(ctx, rep); err != nil {
		f.t.Fatalf("failed to create test feedback report: %v", err)
	}
	return rep
}

// SampleGame returns a list entry as the catalog adapter would produce it.
func SampleGame(id, name string) models.Game {
	return models.Game{
		ID:          id,
		Name:        name,
		IconURL:     "https://cdn.example.com/" + id + ".png",
		IconHint:    "action rpg",
		Description: name + " summary",
		Tags:        []string{"Action", "RPG"},
		DownloadURL: models.PlaceholderDownloadURL,
		Rating:      models.PlaceholderRating,
		Size:        models.PlaceholderSize,
		Downloads:   models.PlaceholderDownloads,
	}
}

// SampleDetails returns a fully populated detail record with one resource.
func SampleDetails(id, name string) *models.GameDetails {
	size := 52428800.0
	prefix := "https://dl.example.com"
	return &models.GameDetails{
		ID:                id,
		Name:              name,
		Description:       "First line<br>Second line",
		Summary:           name + " summary",
		Icon:              "https://cdn.example.com/" + id + ".png",
		HeaderImage:       "https://cdn.example.com/" + id + "-header.jpg",
		DetailImages:      []string{"https://cdn.example.com/" + id + "-1.jpg"},
		Tags:              []string{"Action"},
		Developer:         "Example Studio",
		FileSize:          &size,
		LatestAt:          "2024-03-05T10:00:00Z",
		LatestContent:     "Bug fixes<br />Balance changes",
		LimitAge:          "12+",
		ReleaseAt:         "2023-11-20T00:00:00Z",
		DownloadCountShow: "1M+",
		Star:              4.5,
		Resource: []models.Resource{{
			ID:      "r1",
			URL:     "/files/" + id + ".apk",
			Size:    size,
			Version: "1.2.0",
			Channel: models.Channel{Name: "Official", Type: "apk", URLPrefix: &prefix},
		}},
	}
}

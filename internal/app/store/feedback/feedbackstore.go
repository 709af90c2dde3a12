// internal/app/store/feedback/feedbackstore.go
package feedbackstore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/system/indexes"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no report matches a reference.
var ErrNotFound = errors.New("feedback report not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(indexes.FeedbackCollection)}
}

// Create inserts a report. ID, Ref and CreatedAt are filled in when unset.
// The stored report is returned so callers can show its Ref.
func (s *Store) Create(ctx context.Context, rep models.FeedbackReport) (models.FeedbackReport, error) {
	if rep.ID.IsZero() {
		rep.ID = primitive.NewObjectID()
	}
	if rep.Ref == "" {
		rep.Ref = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, rep); err != nil {
		return models.FeedbackReport{}, err
	}
	return rep, nil
}

// CreateFrom builds a report from the HTTP request (client IP and user agent)
// and inserts it.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, game *models.GameDetails, reporter, message, contact string) (models.FeedbackReport, error) {
	return s.Create(ctx, models.FeedbackReport{
		GameID:    game.ID,
		GameName:  game.Name,
		Reporter:  reporter,
		Message:   message,
		Contact:   contact,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// GetByRef loads the report with the given reference.
func (s *Store) GetByRef(ctx context.Context, ref string) (models.FeedbackReport, error) {
	var rep models.FeedbackReport
	err := s.c.FindOne(ctx, bson.M{"ref": ref}).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rep, ErrNotFound
	}
	return rep, err
}

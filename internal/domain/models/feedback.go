// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackReport is a visitor's report about a broken or missing download link.
// Ref is the short reference shown back to the visitor after submitting.
type FeedbackReport struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Ref       string             `bson:"ref"`
	GameID    string             `bson:"game_id"`
	GameName  string             `bson:"game_name"`
	Reporter  string             `bson:"reporter,omitempty"`
	Message   string             `bson:"message"`
	Contact   string             `bson:"contact,omitempty"`
	IP        string             `bson:"ip"`
	UserAgent string             `bson:"user_agent,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

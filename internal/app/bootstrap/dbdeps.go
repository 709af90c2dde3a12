// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// MongoDB is optional; both are nil when mongo_uri is blank.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Catalog is the remote game catalog client shared by every page.
	Catalog *catalog.Client

	// FeedbackLimiter throttles report submissions per client IP.
	FeedbackLimiter *ratelimit.FeedbackLimiter
}

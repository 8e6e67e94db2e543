package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used by the service.
const (
	CollSiteSettings = "site_settings"
	CollTeamMembers  = "team_members"
	CollPopups       = "popups"
	CollBlogs        = "blogs"
	CollVehicles     = "vehicles"
)

// Database wraps the MongoDB client and the application database.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection with a ping against the
// primary, and ensures the indexes the list endpoints rely on.
func New(ctx context.Context, uri, dbName string) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// The client spawns monitoring goroutines on Connect; release them
		// before reporting the unreachable store.
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	d := &Database{
		client: client,
		db:     client.Database(dbName),
	}
	d.ensureIndexes(ctx)
	return d, nil
}

// ensureIndexes creates the sort indexes in the background. Failures are
// logged, not fatal: lists still work without them, just slower.
func (d *Database) ensureIndexes(ctx context.Context) {
	for _, name := range []string{CollTeamMembers, CollBlogs, CollVehicles, CollPopups} {
		coll := d.db.Collection(name)
		model := mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		}
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("could not ensure created_at index")
		}
	}
}

// Collection returns a handle on one of the named collections.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping verifies the store is reachable; used by the health endpoint.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the MongoDB connection on graceful shutdown.
func (d *Database) Disconnect(ctx context.Context) {
	if d.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := d.client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("error disconnecting MongoDB")
		return
	}
	log.Info().Msg("MongoDB connection closed")
}

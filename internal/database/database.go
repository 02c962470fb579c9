package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection     = "users"
	NotesCollection     = "notes"
	RemindersCollection = "reminders"
)

// DB owns the process-wide MongoDB client pool.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      *zap.Logger
}

// Connect dials MongoDB and pings the primary before returning.
func Connect(ctx context.Context, uri, dbName string, log *zap.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("connected to MongoDB", zap.String("db", dbName))
	return &DB{Client: client, Database: client.Database(dbName), log: log}, nil
}

// Ping reports whether the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close drains the pool.
func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// EnsureIndexes creates the uniqueness and ordering indexes the stores rely on.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_firebase_uid"),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_email"),
			},
		},
		NotesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		RemindersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "dateTime", Value: 1}}},
		},
	}

	for coll, models := range specs {
		names, err := d.Database.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		d.log.Debug("indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}

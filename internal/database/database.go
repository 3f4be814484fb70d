package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shadowknight55/social-dashboard/internal/config"
	"github.com/shadowknight55/social-dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect opens a MongoDB client, verifies connectivity, and returns the
// application database handle. The caller owns the client lifecycle; there is
// no package-level connection state.
func Connect(ctx context.Context, cfg *config.AppConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), connectTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Mongo.DatabaseName()), nil
}

// EnsureIndexes creates the indexes the upsert keys rely on: one daily record
// per (platform, date) and one settings document per user.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(models.CollectionDailyStats).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "platform", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("platform_date_unique"),
	})
	if err != nil {
		return fmt.Errorf("create analytics_stats index: %w", err)
	}

	_, err = db.Collection(models.CollectionSettings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_unique"),
	})
	if err != nil {
		return fmt.Errorf("create settings index: %w", err)
	}
	return nil
}

package stats

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shadowknight55/social-dashboard/internal/models"
)

// Store is the persistence boundary for daily stat records. The service only
// talks to this interface, so tests can swap in an in-memory implementation.
type Store interface {
	// FindRange returns all records for a platform within [start, end],
	// sorted by date ascending.
	FindRange(ctx context.Context, platform string, start, end time.Time) ([]models.DailyStatModel, error)
	// BulkUpsert writes records keyed on (platform, date), inserting new
	// days and overwriting existing ones.
	BulkUpsert(ctx context.Context, records []models.DailyStatModel) error
	// PurgePlatform removes every record for a platform and reports how
	// many were deleted.
	PurgePlatform(ctx context.Context, platform string) (int64, error)
	// LatestPerPlatform returns the most recent record for each of the
	// given platforms. Platforms without any record are absent from the
	// result.
	LatestPerPlatform(ctx context.Context, platforms []string) (map[string]models.DailyStatModel, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore builds a Store backed by the analytics_stats collection.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(models.CollectionDailyStats)}
}

func (s *mongoStore) FindRange(ctx context.Context, platform string, start, end time.Time) ([]models.DailyStatModel, error) {
	filter := bson.M{
		"platform": platform,
		"date":     bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find stats range: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.DailyStatModel
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode stats range: %w", err)
	}
	return records, nil
}

func (s *mongoStore) BulkUpsert(ctx context.Context, records []models.DailyStatModel) error {
	if len(records) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"platform": record.Platform, "date": record.Date}).
			SetUpdate(bson.M{"$set": bson.M{
				"stats":     record.Stats,
				"updatedAt": record.UpdatedAt,
			}}).
			SetUpsert(true))
	}
	if _, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("bulk upsert stats: %w", err)
	}
	return nil
}

func (s *mongoStore) PurgePlatform(ctx context.Context, platform string) (int64, error) {
	result, err := s.coll.DeleteMany(ctx, bson.M{"platform": platform})
	if err != nil {
		return 0, fmt.Errorf("purge platform stats: %w", err)
	}
	return result.DeletedCount, nil
}

func (s *mongoStore) LatestPerPlatform(ctx context.Context, platforms []string) (map[string]models.DailyStatModel, error) {
	if len(platforms) == 0 {
		return map[string]models.DailyStatModel{}, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"platform": bson.M{"$in": platforms}}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$platform",
			"latest": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$latest"}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate latest stats: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.DailyStatModel
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode latest stats: %w", err)
	}
	latest := make(map[string]models.DailyStatModel, len(records))
	for _, record := range records {
		latest[record.Platform] = record
	}
	return latest, nil
}

package settings

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shadowknight55/social-dashboard/internal/models"
)

// Store persists per-user dashboard settings.
type Store interface {
	// Get returns the settings for a user, or nil when none are stored.
	Get(ctx context.Context, userID string) (*models.SettingsModel, error)
	// Upsert writes the settings document keyed on the user ID.
	Upsert(ctx context.Context, settings models.SettingsModel) error
}

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(models.CollectionSettings)}
}

func (s *mongoStore) Get(ctx context.Context, userID string) (*models.SettingsModel, error) {
	var settings models.SettingsModel
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &settings, nil
}

func (s *mongoStore) Upsert(ctx context.Context, settings models.SettingsModel) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": settings.UserID},
		bson.M{"$set": bson.M{
			"activeCharts":  settings.ActiveCharts,
			"chartType":     settings.ChartType,
			"theme":         settings.Theme,
			"notifications": settings.Notifications,
			"updatedAt":     settings.UpdatedAt,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

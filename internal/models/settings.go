package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CollectionSettings = "settings"

// SettingsModel is a per-user dashboard settings document, unique per user.
type SettingsModel struct {
	ID            primitive.ObjectID `json:"id,omitempty"   bson:"_id,omitempty"`
	UserID        string             `json:"userId"         bson:"userId"`
	ActiveCharts  []string           `json:"activeCharts"   bson:"activeCharts"`
	ChartType     string             `json:"chartType"      bson:"chartType"`
	Theme         string             `json:"theme"          bson:"theme"`
	Notifications bool               `json:"notifications"  bson:"notifications"`
	UpdatedAt     time.Time          `json:"updatedAt"      bson:"updatedAt"`
}

// DefaultActiveCharts returns the platforms a fresh dashboard tracks.
func DefaultActiveCharts() []string {
	return []string{"youtube", "twitch"}
}

// DefaultSettings mirrors the dashboard's initial state for a new user.
func DefaultSettings(userID string) SettingsModel {
	return SettingsModel{
		UserID:        userID,
		ActiveCharts:  DefaultActiveCharts(),
		ChartType:     "line",
		Theme:         "dark",
		Notifications: true,
	}
}

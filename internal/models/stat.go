package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionDailyStats is the single daily-series collection. Latest-snapshot
// reads are derived from it by max-date lookup, so no separate snapshot
// collection exists.
const CollectionDailyStats = "analytics_stats"

// StatSnapshot holds the four engagement metrics for one day.
type StatSnapshot struct {
	Followers int64 `json:"followers" bson:"followers"`
	Views     int64 `json:"views"     bson:"views"`
	Likes     int64 `json:"likes"     bson:"likes"`
	Shares    int64 `json:"shares"    bson:"shares"`
}

// DailyStatModel is one synthesized daily record, unique per (platform, date).
type DailyStatModel struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Platform  string             `json:"platform"     bson:"platform"`
	Date      time.Time          `json:"date"         bson:"date"`
	Stats     StatSnapshot       `json:"stats"        bson:"stats"`
	UpdatedAt time.Time          `json:"updatedAt"    bson:"updatedAt"`
}

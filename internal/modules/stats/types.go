package stats

import (
	"time"

	"github.com/shadowknight55/social-dashboard/internal/models"
)

// OverrideStatsDTO is the body of a manual snapshot override.
type OverrideStatsDTO struct {
	Platform string `json:"platform" binding:"required"`
	Stats    struct {
		Followers int64 `json:"followers"`
		Views     int64 `json:"views"`
		Likes     int64 `json:"likes"`
		Shares    int64 `json:"shares"`
	} `json:"stats" binding:"required"`
}

type snapshotResponse struct {
	Followers int64 `json:"followers"`
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
	Shares    int64 `json:"shares"`
}

type seriesPointResponse struct {
	Date      time.Time        `json:"date"`
	Stats     snapshotResponse `json:"stats"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type seriesResponse struct {
	Platform string                `json:"platform"`
	Range    string                `json:"range"`
	Data     []seriesPointResponse `json:"data"`
}

func toSnapshotResponse(s models.StatSnapshot) snapshotResponse {
	return snapshotResponse{
		Followers: s.Followers,
		Views:     s.Views,
		Likes:     s.Likes,
		Shares:    s.Shares,
	}
}

func toSeriesPoint(r *models.DailyStatModel) seriesPointResponse {
	return seriesPointResponse{
		Date:      r.Date,
		Stats:     toSnapshotResponse(r.Stats),
		UpdatedAt: r.UpdatedAt,
	}
}

package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shadowknight55/social-dashboard/internal/models"
)

// ErrPlatformRequired is returned when a caller omits the platform.
var ErrPlatformRequired = errors.New("platform parameter is required")

// Service orchestrates range resolution, lazy backfill and reads of the
// daily stats series.
type Service struct {
	store Store
	synth *Synthesizer
	log   *zap.Logger
	now   func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithServiceClock overrides the service's time source.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, synth *Synthesizer, log *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		synth: synth,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Series returns the daily records for a platform over the requested range.
// When the range is empty, or when refresh is true, the full window is
// re-synthesized and upserted day by day before reading back. The base for
// synthesis is the earliest existing record's stats, falling back to
// DefaultBaseStats for platforms with no history.
func (s *Service) Series(ctx context.Context, platform, rangeToken string, refresh bool) ([]models.DailyStatModel, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, ErrPlatformRequired
	}
	start, end := s.resolveRange(rangeToken)

	existing, err := s.store.FindRange(ctx, platform, start, end)
	if err != nil {
		return nil, fmt.Errorf("load series for %s: %w", platform, err)
	}
	if !refresh && len(existing) > 0 {
		return existing, nil
	}

	base := DefaultBaseStats
	if len(existing) > 0 {
		base = existing[0].Stats
	}

	staged := make([]models.DailyStatModel, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		staged = append(staged, models.DailyStatModel{
			Platform:  platform,
			Date:      day,
			Stats:     s.synth.SynthesizeDay(platform, day, base),
			UpdatedAt: s.now(),
		})
	}
	if err := s.store.BulkUpsert(ctx, staged); err != nil {
		return nil, fmt.Errorf("backfill %d days for %s: %w", len(staged), platform, err)
	}
	s.log.Info("backfilled stats series",
		zap.String("platform", platform),
		zap.Int("days", len(staged)),
		zap.Bool("refresh", refresh))

	records, err := s.store.FindRange(ctx, platform, start, end)
	if err != nil {
		return nil, fmt.Errorf("reload series for %s: %w", platform, err)
	}
	return records, nil
}

// Override upserts a manual snapshot for the current day, replacing whatever
// the synthesizer produced for it. Repeated overrides on the same day hit
// the same record.
func (s *Service) Override(ctx context.Context, platform string, snapshot models.StatSnapshot) (models.DailyStatModel, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return models.DailyStatModel{}, ErrPlatformRequired
	}
	now := s.now()
	record := models.DailyStatModel{
		Platform:  platform,
		Date:      truncateToDay(now),
		Stats:     snapshot,
		UpdatedAt: now,
	}
	if err := s.store.BulkUpsert(ctx, []models.DailyStatModel{record}); err != nil {
		return models.DailyStatModel{}, fmt.Errorf("override stats for %s: %w", platform, err)
	}
	s.log.Info("stats override applied", zap.String("platform", platform))
	return record, nil
}

// Purge deletes all persisted history for a platform. The next Series call
// re-seeds it from DefaultBaseStats.
func (s *Service) Purge(ctx context.Context, platform string) (int64, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return 0, ErrPlatformRequired
	}
	deleted, err := s.store.PurgePlatform(ctx, platform)
	if err != nil {
		return 0, err
	}
	s.log.Info("purged platform stats",
		zap.String("platform", platform),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

// Latest returns the most recent record per platform, backfilling the
// default range first for any platform that has no history yet. Empty
// platform tokens are skipped.
func (s *Service) Latest(ctx context.Context, platforms []string) (map[string]models.DailyStatModel, error) {
	wanted := dedupePlatforms(platforms)
	if len(wanted) == 0 {
		return map[string]models.DailyStatModel{}, nil
	}

	latest, err := s.store.LatestPerPlatform(ctx, wanted)
	if err != nil {
		return nil, err
	}
	for _, platform := range wanted {
		if _, ok := latest[platform]; ok {
			continue
		}
		if _, err := s.Series(ctx, platform, DefaultRange, false); err != nil {
			return nil, err
		}
	}
	if len(latest) == len(wanted) {
		return latest, nil
	}
	return s.store.LatestPerPlatform(ctx, wanted)
}

func (s *Service) resolveRange(token string) (time.Time, time.Time) {
	return resolveRangeAt(token, s.now())
}

func dedupePlatforms(platforms []string) []string {
	seen := make(map[string]struct{}, len(platforms))
	out := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		platform = strings.TrimSpace(platform)
		if platform == "" {
			continue
		}
		if _, ok := seen[platform]; ok {
			continue
		}
		seen[platform] = struct{}{}
		out = append(out, platform)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

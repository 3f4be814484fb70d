package stats

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/shadowknight55/social-dashboard/internal/models"
)

// Per-metric compound daily growth rates.
const (
	followersDailyRate = 1.002 // 0.2% daily growth
	viewsDailyRate     = 1.005 // 0.5% daily growth
	likesDailyRate     = 1.003 // 0.3% daily growth
	sharesDailyRate    = 1.002 // 0.2% daily growth
)

// DefaultBaseStats seeds a platform that has no persisted history yet.
var DefaultBaseStats = models.StatSnapshot{
	Followers: 100000,
	Views:     500000,
	Likes:     50000,
	Shares:    10000,
}

// Synthesizer produces plausible daily snapshots by compounding per-metric
// growth from an anchor one year before "now", with multiplicative jitter
// drawn independently per metric per call. Synthesis is intentionally
// non-deterministic; pin the jitter source in tests via WithJitter.
type Synthesizer struct {
	now    func() time.Time
	jitter func() float64
}

// SynthesizerOption customizes a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithClock overrides the time source used to compute the growth anchor.
func WithClock(now func() time.Time) SynthesizerOption {
	return func(s *Synthesizer) { s.now = now }
}

// WithJitter overrides the jitter source.
func WithJitter(jitter func() float64) SynthesizerOption {
	return func(s *Synthesizer) { s.jitter = jitter }
}

func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		now:    time.Now,
		jitter: defaultJitter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultJitter draws a uniform factor in [0.8, 1.2).
func defaultJitter() float64 {
	return 0.8 + rand.Float64()*0.4
}

// SynthesizeDay produces a snapshot for a platform on the given date, grown
// from baseStats. The platform is unused in the math but kept for future
// per-platform tuning. Dates at or before the anchor clamp to zero elapsed
// days, so only jitter applies there.
func (s *Synthesizer) SynthesizeDay(platform string, date time.Time, baseStats models.StatSnapshot) models.StatSnapshot {
	_ = platform

	anchor := s.now().AddDate(-1, 0, 0)
	days := date.Sub(anchor).Hours() / 24
	if days < 0 {
		days = 0
	}

	return models.StatSnapshot{
		Followers: grow(baseStats.Followers, followersDailyRate, days, s.jitter()),
		Views:     grow(baseStats.Views, viewsDailyRate, days, s.jitter()),
		Likes:     grow(baseStats.Likes, likesDailyRate, days, s.jitter()),
		Shares:    grow(baseStats.Shares, sharesDailyRate, days, s.jitter()),
	}
}

func grow(base int64, rate, days, jitter float64) int64 {
	return int64(math.Floor(float64(base) * math.Pow(rate, days) * jitter))
}

package performance

import (
	"math"
	"time"
)

// Config controls how past attempts are weighted. RecencyWeight is the decay
// exponent coefficient; attempts older than MaxAge contribute StaleWeight
// instead of a further-decayed value.
type Config struct {
	RecencyWeight   float64
	MaxAge          time.Duration
	StaleWeight     float64
	DefaultAccuracy float64
}

func DefaultConfig() *Config {
	return &Config{
		RecencyWeight:   0.5,
		MaxAge:          30 * 24 * time.Hour,
		StaleWeight:     0.1,
		DefaultAccuracy: 0.5,
	}
}

// AttemptRecord is one graded answer from a completed quiz attempt, already
// attributed to the primary label of its question's sample.
type AttemptRecord struct {
	LabelID     string
	IsCorrect   bool
	CompletedAt time.Time
}

// LabelScore aggregates a user's history for one diagnostic label.
// RawAccuracy ignores attempt age; TimeWeightedAccuracy discounts older
// attempts and is what sample selection consumes.
type LabelScore struct {
	Correct              int
	Total                int
	WeightedCorrect      float64
	WeightedTotal        float64
	RawAccuracy          float64
	TimeWeightedAccuracy float64
}

// Ledger derives per-label proficiency from attempt history. It holds no
// state between calls; every quiz generation recomputes from a fresh
// snapshot.
type Ledger struct {
	cfg *Config
}

func NewLedger(cfg *Config) *Ledger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Ledger{cfg: cfg}
}

// AttemptWeight computes the age-decayed weight of an attempt completed at
// completedAt, as seen from now. The decay exponent uses whole elapsed days,
// while the staleness cutoff compares the exact age against MaxAge.
func (l *Ledger) AttemptWeight(now, completedAt time.Time) float64 {
	age := now.Sub(completedAt)
	if age > l.cfg.MaxAge {
		return l.cfg.StaleWeight
	}
	ageDays := math.Floor(age.Hours() / 24)
	maxDays := l.cfg.MaxAge.Hours() / 24
	return math.Exp(-l.cfg.RecencyWeight * ageDays / maxDays)
}

// BuildLabelScores folds the attempt records into per-label scores. Records
// without a resolvable label are skipped. Labels with no usable history are
// simply absent from the result; callers treat them as DefaultAccuracy.
func (l *Ledger) BuildLabelScores(now time.Time, records []AttemptRecord) map[string]*LabelScore {
	scores := make(map[string]*LabelScore)

	for _, rec := range records {
		if rec.LabelID == "" {
			continue
		}

		weight := l.AttemptWeight(now, rec.CompletedAt)

		score, ok := scores[rec.LabelID]
		if !ok {
			score = &LabelScore{}
			scores[rec.LabelID] = score
		}

		score.Total++
		score.WeightedTotal += weight
		if rec.IsCorrect {
			score.Correct++
			score.WeightedCorrect += weight
		}
	}

	for _, score := range scores {
		if score.Total > 0 {
			score.RawAccuracy = float64(score.Correct) / float64(score.Total)
			score.TimeWeightedAccuracy = score.WeightedCorrect / score.WeightedTotal
		} else {
			score.RawAccuracy = l.cfg.DefaultAccuracy
			score.TimeWeightedAccuracy = l.cfg.DefaultAccuracy
		}
	}

	return scores
}

// AccuracyByLabel flattens the score map to the time-weighted accuracies the
// sample selector consumes.
func AccuracyByLabel(scores map[string]*LabelScore) map[string]float64 {
	acc := make(map[string]float64, len(scores))
	for labelID, score := range scores {
		acc[labelID] = score.TimeWeightedAccuracy
	}
	return acc
}

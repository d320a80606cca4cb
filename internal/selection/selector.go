package selection

import (
	"math/rand"
	"sort"
	"time"

	"ecg-quiz-service/internal/models"
)

// Config controls the blend between weakness-targeted and random selection.
// Personalization ramps from MinPersonalization for a new user up to
// MaxPersonalization once the user has completed RampQuizzes quizzes.
type Config struct {
	MinPersonalization float64
	MaxPersonalization float64
	RampQuizzes        int
	DefaultAccuracy    float64
}

func DefaultConfig() *Config {
	return &Config{
		MinPersonalization: 0.3,
		MaxPersonalization: 0.7,
		RampQuizzes:        10,
		DefaultAccuracy:    0.5,
	}
}

// SampleSelector chooses which ECG samples to quiz on, weighting samples
// whose primary label the user has historically answered poorly.
type SampleSelector struct {
	cfg  *Config
	rand *rand.Rand
}

// NewSampleSelector builds a selector. A nil cfg uses defaults; a nil source
// seeds from the wall clock. Tests pass a seeded source for deterministic
// selection.
func NewSampleSelector(cfg *Config, r *rand.Rand) *SampleSelector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SampleSelector{cfg: cfg, rand: r}
}

// PersonalizationFactor returns the blend ratio p for a user with the given
// number of completed quizzes. p saturates at MaxPersonalization once the
// ramp is reached.
func (s *SampleSelector) PersonalizationFactor(completedQuizzes int) float64 {
	progress := float64(completedQuizzes) / float64(s.cfg.RampQuizzes)
	if progress > 1 {
		progress = 1
	}
	return s.cfg.MinPersonalization + (s.cfg.MaxPersonalization-s.cfg.MinPersonalization)*progress
}

type weightedSample struct {
	sample models.EcgSample
	weight float64
}

// Select returns up to count samples, no duplicates. Every candidate gets a
// final weight p*(1-accuracy) + (1-p)*r and the top count by weight win.
// This is intentionally a deterministic sort-and-slice over the weights, not
// a probabilistic weighted draw; randomness enters only through the initial
// shuffle and the r term.
func (s *SampleSelector) Select(samples []models.EcgSample, accuracyByLabel map[string]float64, count, completedQuizzes int) []models.EcgSample {
	p := s.PersonalizationFactor(completedQuizzes)

	shuffled := make([]models.EcgSample, len(samples))
	copy(shuffled, samples)
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	weighted := make([]weightedSample, 0, len(shuffled))
	for _, sample := range shuffled {
		labelID := sample.PrimaryLabelID()
		if labelID == "" {
			continue
		}

		accuracy, ok := accuracyByLabel[labelID]
		if !ok {
			accuracy = s.cfg.DefaultAccuracy
		}

		// Lower historical accuracy means a higher selection weight.
		performanceWeight := 1 - accuracy
		randomWeight := s.rand.Float64()
		finalWeight := p*performanceWeight + (1-p)*randomWeight

		weighted = append(weighted, weightedSample{sample: sample, weight: finalWeight})
	}

	// Stable sort keeps the shuffle order for equal weights.
	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].weight > weighted[j].weight
	})

	if count > len(weighted) {
		count = len(weighted)
	}
	selected := make([]models.EcgSample, 0, count)
	for _, ws := range weighted[:count] {
		selected = append(selected, ws.sample)
	}
	return selected
}

// SelectRandom returns up to count samples uniformly at random, ignoring
// performance history. Used by the non-personalized generator.
func (s *SampleSelector) SelectRandom(samples []models.EcgSample, count int) []models.EcgSample {
	shuffled := make([]models.EcgSample, len(samples))
	copy(shuffled, samples)
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

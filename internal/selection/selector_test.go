package selection

import (
	"math"
	"math/rand"
	"testing"

	"ecg-quiz-service/internal/models"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestPersonalizationFactorRamp(t *testing.T) {
	selector := NewSampleSelector(nil, seeded(1))

	testCases := []struct {
		name             string
		completedQuizzes int
		expected         float64
	}{
		{"new user gets the ramp floor", 0, 0.3},
		{"halfway up the ramp", 5, 0.5},
		{"ramp saturates at ten quizzes", 10, 0.7},
		{"stays saturated past the ramp", 20, 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := selector.PersonalizationFactor(tc.completedQuizzes)
			if math.Abs(p-tc.expected) > 1e-9 {
				t.Errorf("Expected p=%.2f for %d completed quizzes, got %.4f", tc.expected, tc.completedQuizzes, p)
			}
		})
	}
}

func TestPersonalizationFactorMonotonic(t *testing.T) {
	selector := NewSampleSelector(nil, seeded(1))

	p0 := selector.PersonalizationFactor(0)
	p10 := selector.PersonalizationFactor(10)
	p20 := selector.PersonalizationFactor(20)

	if !(p0 < p10) {
		t.Errorf("Expected p(0)=%.3f < p(10)=%.3f", p0, p10)
	}
	if p10 != p20 {
		t.Errorf("Expected saturation: p(10)=%.3f should equal p(20)=%.3f", p10, p20)
	}
}

func TestSelectSkipsUnlabeledSamples(t *testing.T) {
	selector := NewSampleSelector(nil, seeded(42))

	samples := []models.EcgSample{
		{ID: "a", LabelIDs: []string{"l1"}},
		{ID: "b", LabelIDs: []string{"l2"}},
		{ID: "c"}, // no labels, never selectable
	}

	selected := selector.Select(samples, nil, 5, 0)

	if len(selected) != 2 {
		t.Fatalf("Expected 2 selected samples, got %d", len(selected))
	}
	for _, s := range selected {
		if s.ID == "c" {
			t.Error("Unlabeled sample must never be selected")
		}
	}
}

func TestSelectNoDuplicates(t *testing.T) {
	selector := NewSampleSelector(nil, seeded(7))

	samples := make([]models.EcgSample, 0, 20)
	for i := 0; i < 20; i++ {
		samples = append(samples, models.EcgSample{
			ID:       string(rune('a' + i)),
			LabelIDs: []string{"l1"},
		})
	}

	selected := selector.Select(samples, nil, 10, 3)
	if len(selected) != 10 {
		t.Fatalf("Expected 10 selected samples, got %d", len(selected))
	}
	seen := make(map[string]bool)
	for _, s := range selected {
		if seen[s.ID] {
			t.Errorf("Sample %s selected twice", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestSelectTargetsWeakLabels(t *testing.T) {
	// With p=0.7 a weak-label sample scores at least 0.7 while a mastered
	// one scores at most 0.3, so weak samples always win regardless of the
	// random term. This holds for any seed.
	selector := NewSampleSelector(nil, seeded(99))

	samples := []models.EcgSample{
		{ID: "weak1", LabelIDs: []string{"weak"}},
		{ID: "strong1", LabelIDs: []string{"strong"}},
		{ID: "weak2", LabelIDs: []string{"weak"}},
		{ID: "strong2", LabelIDs: []string{"strong"}},
		{ID: "weak3", LabelIDs: []string{"weak"}},
		{ID: "strong3", LabelIDs: []string{"strong"}},
	}
	accuracy := map[string]float64{
		"weak":   0.0,
		"strong": 1.0,
	}

	selected := selector.Select(samples, accuracy, 3, 10) // saturated ramp, p=0.7
	if len(selected) != 3 {
		t.Fatalf("Expected 3 selected samples, got %d", len(selected))
	}
	for _, s := range selected {
		if s.LabelIDs[0] != "weak" {
			t.Errorf("Expected only weak-label samples, got %s", s.ID)
		}
	}
}

func TestSelectUnknownLabelTreatedAsCoinFlip(t *testing.T) {
	// A label with no history must not be favored over a label the user
	// answers at exactly 50%: both get the same performance weight.
	cfg := DefaultConfig()
	cfg.MaxPersonalization = 1.0
	cfg.MinPersonalization = 1.0 // pure performance weighting, no random term
	selector := NewSampleSelector(cfg, seeded(5))

	samples := []models.EcgSample{
		{ID: "known", LabelIDs: []string{"seen"}},
		{ID: "unknown", LabelIDs: []string{"never-seen"}},
		{ID: "weak", LabelIDs: []string{"bad"}},
	}
	accuracy := map[string]float64{
		"seen": 0.5,
		"bad":  0.0,
	}

	selected := selector.Select(samples, accuracy, 1, 20)
	if len(selected) != 1 || selected[0].ID != "weak" {
		t.Fatalf("Expected the weak sample to outrank coin-flip labels, got %v", selected)
	}
}

func TestSelectDeterministicForSeed(t *testing.T) {
	// The selector is sort-and-slice over computed weights: given the same
	// source it must pick the same samples in the same order.
	samples := []models.EcgSample{
		{ID: "a", LabelIDs: []string{"l1"}},
		{ID: "b", LabelIDs: []string{"l2"}},
		{ID: "c", LabelIDs: []string{"l3"}},
		{ID: "d", LabelIDs: []string{"l4"}},
	}
	accuracy := map[string]float64{"l1": 0.2, "l2": 0.9, "l3": 0.4, "l4": 0.6}

	first := NewSampleSelector(nil, seeded(1234)).Select(samples, accuracy, 2, 5)
	second := NewSampleSelector(nil, seeded(1234)).Select(samples, accuracy, 2, 5)

	if len(first) != len(second) {
		t.Fatalf("Expected identical selections, got lengths %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Selection diverged at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSelectRandomRespectsCount(t *testing.T) {
	selector := NewSampleSelector(nil, seeded(3))

	samples := []models.EcgSample{
		{ID: "a", LabelIDs: []string{"l1"}},
		{ID: "b", LabelIDs: []string{"l2"}},
	}

	if got := selector.SelectRandom(samples, 5); len(got) != 2 {
		t.Errorf("Expected the whole pool when count exceeds it, got %d", len(got))
	}
	if got := selector.SelectRandom(samples, 1); len(got) != 1 {
		t.Errorf("Expected 1 sample, got %d", len(got))
	}
}

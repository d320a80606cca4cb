package generator

import (
	"math/rand"
	"testing"

	"ecg-quiz-service/internal/models"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func labelPool(descs ...string) []models.DiagnosticLabel {
	pool := make([]models.DiagnosticLabel, 0, len(descs))
	for i, d := range descs {
		pool = append(pool, models.DiagnosticLabel{ID: d, LabelCode: i + 1, LabelDesc: d})
	}
	return pool
}

func TestBuildQuestionSingleCorrectChoice(t *testing.T) {
	assembler := NewAssembler(seeded(1))
	pool := labelPool("afib", "sinus", "flutter", "brady", "tachy")
	sample := models.EcgSample{ID: "s1", LabelIDs: []string{"afib"}}

	q := assembler.BuildQuestion(sample, pool[:1], pool, 4)
	if q == nil {
		t.Fatal("Expected a question")
	}
	if q.QuestionText != QuestionText {
		t.Errorf("Unexpected prompt: %q", q.QuestionText)
	}
	if len(q.Choices) != 4 {
		t.Fatalf("Expected 4 choices, got %d", len(q.Choices))
	}

	correct := 0
	for _, c := range q.Choices {
		if c.IsCorrect {
			correct++
			if c.Text != "afib" {
				t.Errorf("Correct choice must carry the sample's label, got %q", c.Text)
			}
		}
	}
	if correct != 1 {
		t.Errorf("Expected exactly one correct choice, got %d", correct)
	}
}

func TestBuildQuestionDistractorsExcludeSampleLabels(t *testing.T) {
	assembler := NewAssembler(seeded(2))
	pool := labelPool("afib", "sinus", "flutter", "brady", "tachy")
	sampleLabels := pool[:2] // afib and sinus are both correct diagnoses
	sample := models.EcgSample{ID: "s1", LabelIDs: []string{"afib", "sinus"}}

	for i := 0; i < 50; i++ {
		q := assembler.BuildQuestion(sample, sampleLabels, pool, 4)
		if q == nil {
			t.Fatal("Expected a question")
		}
		for _, c := range q.Choices {
			if c.IsCorrect {
				if c.Text != "afib" && c.Text != "sinus" {
					t.Fatalf("Correct choice %q not among the sample's labels", c.Text)
				}
				continue
			}
			if c.Text == "afib" || c.Text == "sinus" {
				t.Fatalf("Distractor %q is also a correct diagnosis for the sample", c.Text)
			}
		}
	}
}

func TestBuildQuestionCorrectLabelDrawnFromFullSet(t *testing.T) {
	// The assembler draws the correct label uniformly from all of the
	// sample's labels, not always the first one.
	assembler := NewAssembler(seeded(3))
	pool := labelPool("afib", "sinus", "flutter", "brady")
	sampleLabels := pool[:2]
	sample := models.EcgSample{ID: "s1", LabelIDs: []string{"afib", "sinus"}}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		q := assembler.BuildQuestion(sample, sampleLabels, pool, 4)
		for _, c := range q.Choices {
			if c.IsCorrect {
				seen[c.Text] = true
			}
		}
	}
	if !seen["afib"] || !seen["sinus"] {
		t.Errorf("Expected both labels to appear as the correct choice over 100 builds, saw %v", seen)
	}
}

func TestBuildQuestionCapsChoicesOnSmallPool(t *testing.T) {
	assembler := NewAssembler(seeded(4))
	pool := labelPool("afib", "sinus", "flutter")
	sample := models.EcgSample{ID: "s1", LabelIDs: []string{"afib"}}

	// Only two distractor candidates exist; the question gets three
	// choices instead of failing.
	q := assembler.BuildQuestion(sample, pool[:1], pool, 4)
	if q == nil {
		t.Fatal("Expected a question")
	}
	if len(q.Choices) != 3 {
		t.Errorf("Expected 3 choices with a short pool, got %d", len(q.Choices))
	}
}

func TestBuildQuestionNilForUnlabeledSample(t *testing.T) {
	assembler := NewAssembler(seeded(5))
	pool := labelPool("afib", "sinus", "flutter", "brady")
	sample := models.EcgSample{ID: "s1"}

	if q := assembler.BuildQuestion(sample, nil, pool, 4); q != nil {
		t.Error("Expected nil question for a sample without labels")
	}
}

func TestBuildQuestionsSkipsUnlabeledSamples(t *testing.T) {
	assembler := NewAssembler(seeded(6))
	pool := labelPool("l1", "l2", "l3", "l4")
	labelsByID := make(map[string]models.DiagnosticLabel, len(pool))
	for _, l := range pool {
		labelsByID[l.ID] = l
	}

	samples := []models.EcgSample{
		{ID: "a", LabelIDs: []string{"l1"}},
		{ID: "b", LabelIDs: []string{"l2"}},
		{ID: "c"}, // unlabeled, contributes no question
	}

	questions := assembler.BuildQuestions(samples, labelsByID, pool, 4)
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	if questions[0].SampleID != "a" || questions[1].SampleID != "b" {
		t.Errorf("Questions reference wrong samples: %s, %s", questions[0].SampleID, questions[1].SampleID)
	}
	for _, q := range questions {
		if len(q.Choices) != 4 {
			t.Errorf("Expected 4 choices for question on %s, got %d", q.SampleID, len(q.Choices))
		}
	}
}

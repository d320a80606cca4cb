package generator

import (
	"math/rand"
	"time"

	"ecg-quiz-service/internal/models"

	"github.com/google/uuid"
)

// QuestionText is the prompt attached to every generated question.
const QuestionText = "What is the correct diagnosis for this ECG?"

// DefaultChoicesPerQuestion is the service-level default; the HTTP
// generation path overrides it to 6.
const DefaultChoicesPerQuestion = 4

// Assembler turns a selected sample into one multiple-choice question.
type Assembler struct {
	rand *rand.Rand
}

// NewAssembler builds an assembler. A nil source seeds from the wall clock;
// tests inject a seeded one.
func NewAssembler(r *rand.Rand) *Assembler {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Assembler{rand: r}
}

// BuildQuestion assembles a question for the sample: one correct choice drawn
// uniformly from the sample's own labels, plus up to choicesPerQuestion-1
// distractors drawn without replacement from the rest of the pool. Returns
// nil when the sample has no labels; a short distractor pool caps the choice
// count instead of failing.
func (a *Assembler) BuildQuestion(sample models.EcgSample, sampleLabels, pool []models.DiagnosticLabel, choicesPerQuestion int) *models.Question {
	if len(sampleLabels) == 0 {
		return nil
	}
	if choicesPerQuestion <= 0 {
		choicesPerQuestion = DefaultChoicesPerQuestion
	}

	correct := sampleLabels[a.rand.Intn(len(sampleLabels))]

	// Distractor candidates are every pool label not associated with the
	// sample, so no distractor is ever also a correct diagnosis.
	associated := make(map[string]bool, len(sampleLabels))
	for _, l := range sampleLabels {
		associated[l.ID] = true
	}
	candidates := make([]models.DiagnosticLabel, 0, len(pool))
	for _, l := range pool {
		if !associated[l.ID] {
			candidates = append(candidates, l)
		}
	}

	a.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	numDistractors := choicesPerQuestion - 1
	if numDistractors > len(candidates) {
		numDistractors = len(candidates)
	}

	choices := make([]models.Choice, 0, numDistractors+1)
	choices = append(choices, models.Choice{
		ID:        uuid.NewString(),
		Text:      correct.LabelDesc,
		IsCorrect: true,
	})
	for _, l := range candidates[:numDistractors] {
		choices = append(choices, models.Choice{
			ID:        uuid.NewString(),
			Text:      l.LabelDesc,
			IsCorrect: false,
		})
	}

	return &models.Question{
		ID:           uuid.NewString(),
		SampleID:     sample.ID,
		QuestionText: QuestionText,
		Choices:      choices,
	}
}

// BuildQuestions assembles questions for the selected samples, resolving each
// sample's full label set through labelsByID. Samples whose labels cannot be
// resolved are skipped, so the result may be shorter than the input.
func (a *Assembler) BuildQuestions(samples []models.EcgSample, labelsByID map[string]models.DiagnosticLabel, pool []models.DiagnosticLabel, choicesPerQuestion int) []models.Question {
	questions := make([]models.Question, 0, len(samples))
	for _, sample := range samples {
		sampleLabels := make([]models.DiagnosticLabel, 0, len(sample.LabelIDs))
		for _, id := range sample.LabelIDs {
			if l, ok := labelsByID[id]; ok {
				sampleLabels = append(sampleLabels, l)
			}
		}
		q := a.BuildQuestion(sample, sampleLabels, pool, choicesPerQuestion)
		if q == nil {
			continue
		}
		questions = append(questions, *q)
	}
	return questions
}

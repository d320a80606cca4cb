package service

import (
	"errors"
	"testing"

	"ecg-quiz-service/internal/models"
)

func TestValidateRequirements(t *testing.T) {
	labeled := []models.EcgSample{{ID: "a", LabelIDs: []string{"l1"}}}
	pool := []models.DiagnosticLabel{
		{ID: "l1", LabelDesc: "afib"},
		{ID: "l2", LabelDesc: "sinus"},
		{ID: "l3", LabelDesc: "flutter"},
		{ID: "l4", LabelDesc: "brady"},
	}

	testCases := []struct {
		name               string
		samples            []models.EcgSample
		pool               []models.DiagnosticLabel
		choicesPerQuestion int
		expected           error
	}{
		{"valid pool", labeled, pool, 4, nil},
		{"no eligible samples", nil, pool, 4, ErrNoSamples},
		{"label pool smaller than choice count", labeled, pool[:3], 4, ErrNotEnoughLabels},
		{"label pool exactly choice count", labeled, pool, len(pool), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRequirements(tc.samples, tc.pool, tc.choicesPerQuestion)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
			if err != nil && !IsInsufficientData(err) {
				t.Errorf("Expected %v to classify as insufficient data", err)
			}
		})
	}
}

func TestGenerateOptionsDefaults(t *testing.T) {
	var opts GenerateOptions
	opts.applyDefaults()

	if opts.NumQuestions != 5 {
		t.Errorf("Expected default 5 questions, got %d", opts.NumQuestions)
	}
	if opts.ChoicesPerQuestion != 4 {
		t.Errorf("Expected default 4 choices per question, got %d", opts.ChoicesPerQuestion)
	}
	if opts.PersonalizationWeight != 0.7 {
		t.Errorf("Expected default personalization weight 0.7, got %.2f", opts.PersonalizationWeight)
	}
	if opts.RecencyWeight != 0.5 {
		t.Errorf("Expected default recency weight 0.5, got %.2f", opts.RecencyWeight)
	}
}

func TestGenerateOptionsKeepsExplicitValues(t *testing.T) {
	opts := GenerateOptions{
		NumQuestions:          8,
		ChoicesPerQuestion:    6,
		PersonalizationWeight: 0.9,
		RecencyWeight:         0.2,
	}
	opts.applyDefaults()

	if opts.NumQuestions != 8 || opts.ChoicesPerQuestion != 6 {
		t.Errorf("Explicit counts overwritten: %d questions, %d choices", opts.NumQuestions, opts.ChoicesPerQuestion)
	}
	if opts.PersonalizationWeight != 0.9 || opts.RecencyWeight != 0.2 {
		t.Errorf("Explicit weights overwritten: %.2f / %.2f", opts.PersonalizationWeight, opts.RecencyWeight)
	}
}

package models

import "testing"

func sampleQuiz() *Quiz {
	return &Quiz{
		ID: "quiz1",
		Questions: []Question{
			{
				ID: "q1",
				Choices: []Choice{
					{ID: "c1", Text: "afib", IsCorrect: false},
					{ID: "c2", Text: "sinus", IsCorrect: true},
				},
			},
		},
	}
}

func TestFindQuestionAndChoice(t *testing.T) {
	quiz := sampleQuiz()

	q := quiz.FindQuestion("q1")
	if q == nil {
		t.Fatal("Expected to find q1")
	}
	if quiz.FindQuestion("missing") != nil {
		t.Error("Expected nil for unknown question id")
	}

	if c := q.FindChoice("c2"); c == nil || !c.IsCorrect {
		t.Error("Expected to find the correct choice c2")
	}
	if q.FindChoice("missing") != nil {
		t.Error("Expected nil for unknown choice id")
	}

	if correct := q.CorrectChoice(); correct == nil || correct.ID != "c2" {
		t.Error("Expected c2 as the correct choice")
	}
}

func TestSampleEligibility(t *testing.T) {
	labeled := EcgSample{ID: "s1", LabelIDs: []string{"l2", "l1"}}
	unlabeled := EcgSample{ID: "s2"}

	if !labeled.Eligible() || labeled.PrimaryLabelID() != "l2" {
		t.Errorf("Expected eligible sample with primary label l2, got %q", labeled.PrimaryLabelID())
	}
	if unlabeled.Eligible() || unlabeled.PrimaryLabelID() != "" {
		t.Error("Expected unlabeled sample to be ineligible with empty primary label")
	}
}

func TestParseRole(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Role
		valid    bool
	}{
		{"student", RoleStudent, true},
		{"teacher", RoleTeacher, true},
		{"admin", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run("role "+tc.raw, func(t *testing.T) {
			role := ParseRole(tc.raw)
			if role != tc.expected {
				t.Errorf("Expected role %q, got %q", tc.expected, role)
			}
			if role.Valid() != tc.valid {
				t.Errorf("Expected Valid()=%v for %q", tc.valid, tc.raw)
			}
		})
	}

	if RoleStudent.CanViewOthers() {
		t.Error("Students must not view other users' data")
	}
	if !RoleTeacher.CanViewOthers() || !RoleAdmin.CanViewOthers() {
		t.Error("Teachers and admins may view other users' data")
	}
}

package models

import "time"

// QuizAttempt records one user's submission of a quiz. Question attempts are
// embedded, so a graded attempt is committed atomically with all of its
// answers; readers never see a completed attempt with none.
type QuizAttempt struct {
	ID               string            `bson:"_id,omitempty" json:"id"`
	UserID           string            `bson:"user_id" json:"user_id"`
	QuizID           string            `bson:"quiz_id" json:"quiz_id"`
	StartedAt        time.Time         `bson:"started_at" json:"started_at"`
	CompletedAt      *time.Time        `bson:"completed_at" json:"completed_at"`
	QuestionAttempts []QuestionAttempt `bson:"question_attempts" json:"question_attempts"`
}

// QuestionAttempt is one graded answer. SampleID is denormalized from the
// question at grading time so performance attribution does not have to load
// the quiz again.
type QuestionAttempt struct {
	QuestionID       string `bson:"question_id" json:"question_id"`
	SampleID         string `bson:"sample_id" json:"sample_id"`
	SelectedChoiceID string `bson:"selected_choice_id" json:"selected_choice_id"`
	IsCorrect        bool   `bson:"is_correct" json:"is_correct"`
}

// Completed reports whether the attempt has been graded. Only completed
// attempts feed the performance ledger.
func (a *QuizAttempt) Completed() bool {
	return a.CompletedAt != nil
}

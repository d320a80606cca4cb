package models

import "time"

// Quiz is an immutable set of generated questions. Questions and their
// choices are embedded so the whole quiz is written in a single insert and
// never mutated afterwards.
type Quiz struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	Questions   []Question `bson:"questions" json:"questions"`
}

type Question struct {
	ID           string   `bson:"id" json:"id"`
	SampleID     string   `bson:"sample_id" json:"sample_id"`
	QuestionText string   `bson:"question_text" json:"question_text"`
	Choices      []Choice `bson:"choices" json:"choices"`
}

type Choice struct {
	ID        string `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}

// FindQuestion returns the embedded question with the given id, or nil.
func (q *Quiz) FindQuestion(questionID string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i]
		}
	}
	return nil
}

// FindChoice returns the embedded choice with the given id, or nil.
func (q *Question) FindChoice(choiceID string) *Choice {
	for i := range q.Choices {
		if q.Choices[i].ID == choiceID {
			return &q.Choices[i]
		}
	}
	return nil
}

// CorrectChoice returns the single correct choice of the question, or nil if
// the question is malformed.
func (q *Question) CorrectChoice() *Choice {
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}
